// Package lessons generates micro-lessons asynchronously so the
// interactive loop never blocks on the model.
package lessons

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sabilabs/sabi/internal/llm"
)

// Config holds lesson generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for lesson generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.5,
	}
}

// Service generates micro-lessons in the background. One lesson is
// in-flight at a time; a new request replaces a pending one.
type Service struct {
	provider llm.Provider
	cfg      Config

	mu      sync.Mutex
	pending *Lesson
	err     error
	ready   bool
}

// NewService creates a lesson generation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// RequestLesson starts async lesson generation.
func (s *Service) RequestLesson(ctx context.Context, input LessonInput) {
	go func() {
		lesson, err := s.generate(ctx, input)
		s.mu.Lock()
		defer s.mu.Unlock()
		s.pending = lesson
		s.err = err
		s.ready = true
	}()
}

// ConsumeLesson returns the pending lesson if one is ready, clearing the
// slot. Returns (nil, false) while generation is still running or when
// it failed.
func (s *Service) ConsumeLesson() (*Lesson, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil, false
	}
	lesson := s.pending
	s.pending = nil
	s.ready = false
	s.err = nil
	return lesson, lesson != nil
}

// AwaitLesson blocks until the pending generation lands or the context
// expires, clearing the slot. Unlike ConsumeLesson it can tell a failed
// generation (returns immediately with false) from one still running.
func (s *Service) AwaitLesson(ctx context.Context) (*Lesson, bool) {
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for {
		s.mu.Lock()
		if s.ready {
			lesson := s.pending
			s.pending = nil
			s.ready = false
			s.err = nil
			s.mu.Unlock()
			return lesson, lesson != nil
		}
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, false
		case <-ticker.C:
		}
	}
}

// Generate produces a lesson synchronously. The lección command uses
// this path because the student explicitly asked and expects to wait.
func (s *Service) Generate(ctx context.Context, input LessonInput) (*Lesson, error) {
	return s.generate(ctx, input)
}

type lessonOutput struct {
	Title            string                 `json:"title"`
	Explanation      string                 `json:"explanation"`
	WorkedExample    string                 `json:"worked_example"`
	PracticeQuestion practiceQuestionOutput `json:"practice_question"`
}

type practiceQuestionOutput struct {
	Text        string `json:"text"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation"`
}

func (s *Service) generate(ctx context.Context, input LessonInput) (*Lesson, error) {
	ctx = llm.WithPurpose(ctx, "lesson")

	req := llm.Request{
		System: lessonSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildLessonUserMessage(input)},
		},
		Schema:      LessonSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("lesson generation: %w", err)
	}

	var out lessonOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse lesson response: %w", err)
	}

	return &Lesson{
		ConceptID:     input.Concept.ID,
		Title:         out.Title,
		Explanation:   out.Explanation,
		WorkedExample: out.WorkedExample,
		PracticeQuestion: PracticeQuestion{
			Text:        out.PracticeQuestion.Text,
			Answer:      out.PracticeQuestion.Answer,
			Explanation: out.PracticeQuestion.Explanation,
		},
	}, nil
}
