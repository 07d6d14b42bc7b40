// Package mastery tracks per-student mastery probabilities across the
// concept graph. The in-memory state is authoritative; every change is
// written through to the store, and a failed write is reported without
// rolling back memory.
package mastery

import (
	"context"
	"fmt"
	"sync"

	"github.com/sabilabs/sabi/internal/bkt"
	"github.com/sabilabs/sabi/internal/conceptgraph"
	"github.com/sabilabs/sabi/internal/store"
)

// DefaultPrereqDecay is subtracted from a prerequisite's probability
// when the student fails an item on a dependent concept.
const DefaultPrereqDecay = 0.15

// DecayFloor is the lowest probability a decay can leave behind, kept
// above the BKT clamp so a decayed concept still recovers quickly.
const DecayFloor = 0.01

// Persister is the slice of the store the mastery tracker writes through to.
type Persister interface {
	UpsertMastery(ctx context.Context, studentID, conceptID string, probability float64, observed bool) error
	MasteryForStudent(ctx context.Context, studentID string) ([]store.MasteryRow, error)
}

// Update describes one applied mastery change.
type Update struct {
	ConceptID string
	Before    float64
	After     float64
	Attempts  int
}

// Store holds the mastery state for one student. All methods are safe for
// concurrent use; updates for the same student are serialized.
type Store struct {
	mu        sync.Mutex
	graph     *conceptgraph.Graph
	params    bkt.Params
	repo      Persister
	studentID string
	grade     string
	probs     map[string]float64
	attempts  map[string]int
}

// Option configures a Store.
type Option func(*Store)

// WithPersister enables write-through persistence. Without it the store
// is memory-only, which the tests and the graph command use.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.repo = p }
}

// WithParams overrides the default BKT parameters.
func WithParams(p bkt.Params) Option {
	return func(s *Store) { s.params = p }
}

// New creates a mastery store for one student. grade seeds initial priors
// for concepts the student has never attempted.
func New(g *conceptgraph.Graph, studentID, grade string, opts ...Option) *Store {
	s := &Store{
		graph:     g,
		params:    bkt.DefaultParams(),
		studentID: studentID,
		grade:     grade,
		probs:     make(map[string]float64),
		attempts:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrate loads previously persisted estimates, replacing any in-memory
// state for the concepts it finds. Concepts without a persisted row keep
// their grade-based priors.
func (s *Store) Hydrate(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	rows, err := s.repo.MasteryForStudent(ctx, s.studentID)
	if err != nil {
		return fmt.Errorf("hydrate mastery: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		if !s.graph.Contains(row.ConceptID) {
			continue
		}
		s.probs[row.ConceptID] = row.Probability
		s.attempts[row.ConceptID] = row.Attempts
	}
	return nil
}

// Probability returns the current estimate for a concept, seeding the
// grade-based prior on first access.
func (s *Store) Probability(conceptID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.probability(conceptID)
}

// probability assumes the mutex is held.
func (s *Store) probability(conceptID string) float64 {
	if p, ok := s.probs[conceptID]; ok {
		return p
	}
	p := s.graph.InitialPrior(conceptID, s.grade)
	s.probs[conceptID] = p
	return p
}

// Attempts returns the number of recorded observations for a concept.
func (s *Store) Attempts(conceptID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts[conceptID]
}

// Snapshot returns a copy of every known estimate. Concepts never
// accessed are absent.
func (s *Store) Snapshot() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]float64, len(s.probs))
	for id, p := range s.probs {
		out[id] = p
	}
	return out
}

// Lookup returns a read-only view suitable for graph readiness checks.
func (s *Store) Lookup() conceptgraph.MasteryLookup {
	return s.Probability
}

// RecordObservation applies one BKT update for an answered item. The
// returned Update always reflects the applied change; a non-nil error is a
// *store.PersistenceError meaning the write was lost while memory advanced.
func (s *Store) RecordObservation(ctx context.Context, conceptID string, correct bool) (Update, error) {
	s.mu.Lock()
	before := s.probability(conceptID)
	after, err := bkt.Update(before, correct, s.params)
	if err != nil {
		s.mu.Unlock()
		return Update{}, fmt.Errorf("bkt update for %s: %w", conceptID, err)
	}
	s.probs[conceptID] = after
	s.attempts[conceptID]++
	attempts := s.attempts[conceptID]
	s.mu.Unlock()

	u := Update{ConceptID: conceptID, Before: before, After: after, Attempts: attempts}
	if s.repo != nil {
		if err := s.repo.UpsertMastery(ctx, s.studentID, conceptID, after, true); err != nil {
			return u, err
		}
	}
	return u, nil
}

// Decay subtracts amount from a concept's probability, floored at
// DecayFloor. Used to propagate a failure on a dependent concept back
// to its prerequisites. Does not count as an observation.
func (s *Store) Decay(ctx context.Context, conceptID string, amount float64) (Update, error) {
	if amount < 0 || amount > 1 {
		return Update{}, fmt.Errorf("decay amount %v out of [0,1]", amount)
	}

	s.mu.Lock()
	before := s.probability(conceptID)
	after := before - amount
	if after < DecayFloor {
		after = DecayFloor
	}
	s.probs[conceptID] = after
	attempts := s.attempts[conceptID]
	s.mu.Unlock()

	u := Update{ConceptID: conceptID, Before: before, After: after, Attempts: attempts}
	if s.repo != nil {
		if err := s.repo.UpsertMastery(ctx, s.studentID, conceptID, after, false); err != nil {
			return u, err
		}
	}
	return u, nil
}
