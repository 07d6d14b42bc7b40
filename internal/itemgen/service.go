package itemgen

import (
	"context"
	"sync"
	"time"

	"github.com/sabilabs/sabi/internal/itembank"
)

// Token identifies one generation request. The policy compares tokens to
// discard results that arrive after the student has moved on.
type Token uint64

// Result is the outcome of one async generation.
type Result struct {
	Token Token
	Item  itembank.Item
	Err   error
}

// Service runs item generation in the background. One request is
// in-flight at a time: a new Request supersedes the previous one, and a
// superseded result is dropped when it lands.
type Service struct {
	gen     Generator
	timeout time.Duration

	mu      sync.Mutex
	latest  Token
	pending *Result
}

// NewService creates the async generation front of a Generator.
func NewService(gen Generator, timeout time.Duration) *Service {
	return &Service{gen: gen, timeout: timeout}
}

// Request starts generating an item and returns the token identifying
// this request. The result becomes available through Consume.
func (s *Service) Request(ctx context.Context, input GenerateInput) Token {
	s.mu.Lock()
	s.latest++
	token := s.latest
	s.pending = nil
	gen := s.gen
	s.mu.Unlock()

	go func() {
		genCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		item, err := gen.Generate(genCtx, input)

		s.mu.Lock()
		defer s.mu.Unlock()
		// A newer request was issued while this one ran; drop the result.
		if token != s.latest {
			return
		}
		s.pending = &Result{Token: token, Item: item, Err: err}
	}()

	return token
}

// Consume returns the finished result for token, clearing the slot.
// Returns (nil, false) while generation is still running, or when the
// token was superseded.
func (s *Service) Consume(token Token) (*Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil || s.pending.Token != token {
		return nil, false
	}
	res := s.pending
	s.pending = nil
	return res, true
}

// Await blocks until the result for token is available or the context
// expires. Used by the interactive loop, which has nothing else to do
// while the next item is prepared.
func (s *Service) Await(ctx context.Context, token Token) (*Result, bool) {
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for {
		if res, ok := s.Consume(token); ok {
			return res, true
		}
		select {
		case <-ctx.Done():
			return nil, false
		case <-ticker.C:
		}
	}
}
