package mastery

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/sabilabs/sabi/internal/conceptgraph"
	"github.com/sabilabs/sabi/internal/store"
)

type stubPersister struct {
	rows     []store.MasteryRow
	upserts  []store.MasteryRow
	observed []bool
	failWith error
}

func (p *stubPersister) UpsertMastery(_ context.Context, studentID, conceptID string, probability float64, observed bool) error {
	if p.failWith != nil {
		return p.failWith
	}
	p.upserts = append(p.upserts, store.MasteryRow{
		StudentID:   studentID,
		ConceptID:   conceptID,
		Probability: probability,
	})
	p.observed = append(p.observed, observed)
	return nil
}

func (p *stubPersister) MasteryForStudent(_ context.Context, _ string) ([]store.MasteryRow, error) {
	return p.rows, nil
}

func testGraph(t *testing.T) *conceptgraph.Graph {
	t.Helper()
	g, err := conceptgraph.Load(
		[]conceptgraph.Concept{
			{ID: "a", Name: "A", Subject: "Aritmética", Grade: "1ro de secundaria"},
			{ID: "b", Name: "B", Subject: "Aritmética", Grade: "1ro de secundaria"},
			{ID: "c", Name: "C", Subject: "Álgebra", Grade: "2do de secundaria"},
		},
		[]conceptgraph.Edge{
			{From: "a", To: "b"},
			{From: "b", To: "c"},
		},
	)
	if err != nil {
		t.Fatalf("load graph: %v", err)
	}
	return g
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-4 }

func TestInitialPriorSeededOnFirstAccess(t *testing.T) {
	g := testGraph(t)
	s := New(g, "student", "1ro de secundaria")

	// Root concept at matching grade: depth 0 base.
	if got := s.Probability("a"); !approx(got, 0.60) {
		t.Errorf("prior for a = %v, want 0.60", got)
	}
	// Repeat access returns the cached value.
	if got := s.Probability("a"); !approx(got, 0.60) {
		t.Errorf("cached prior for a = %v, want 0.60", got)
	}
	// Deeper concept gets a lower base.
	if s.Probability("c") >= s.Probability("a") {
		t.Error("deeper concept should start with a lower prior")
	}
}

func TestHydrateOverridesPriors(t *testing.T) {
	g := testGraph(t)
	p := &stubPersister{rows: []store.MasteryRow{
		{StudentID: "student", ConceptID: "a", Probability: 0.3, Attempts: 4},
		{StudentID: "student", ConceptID: "zzz", Probability: 0.9}, // not in graph
	}}
	s := New(g, "student", "1ro de secundaria", WithPersister(p))

	if err := s.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	if got := s.Probability("a"); !approx(got, 0.3) {
		t.Errorf("hydrated probability = %v, want 0.3", got)
	}
	if got := s.Attempts("a"); got != 4 {
		t.Errorf("hydrated attempts = %d, want 4", got)
	}
	if _, ok := s.Snapshot()["zzz"]; ok {
		t.Error("unknown concept must be dropped during hydration")
	}
}

func TestRecordObservationKnownScenario(t *testing.T) {
	g := testGraph(t)
	p := &stubPersister{rows: []store.MasteryRow{
		{StudentID: "student", ConceptID: "a", Probability: 0.3},
	}}
	s := New(g, "student", "1ro de secundaria", WithPersister(p))
	if err := s.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}

	u, err := s.RecordObservation(context.Background(), "a", true)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if !approx(u.Before, 0.3) {
		t.Errorf("before = %v, want 0.3", u.Before)
	}
	// Default params, prior 0.3, correct answer.
	if !approx(u.After, 0.6927) {
		t.Errorf("after = %v, want ~0.6927", u.After)
	}
	if u.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", u.Attempts)
	}
	if len(p.upserts) != 1 || !p.observed[0] {
		t.Errorf("expected one observed upsert, got %d", len(p.upserts))
	}
}

func TestDecayLowersWithoutCountingAttempt(t *testing.T) {
	g := testGraph(t)
	p := &stubPersister{rows: []store.MasteryRow{
		{StudentID: "student", ConceptID: "a", Probability: 0.8, Attempts: 2},
	}}
	s := New(g, "student", "1ro de secundaria", WithPersister(p))
	if err := s.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}

	u, err := s.Decay(context.Background(), "a", DefaultPrereqDecay)
	if err != nil {
		t.Fatalf("decay: %v", err)
	}
	if !approx(u.After, 0.65) {
		t.Errorf("after = %v, want 0.65", u.After)
	}
	if got := s.Attempts("a"); got != 2 {
		t.Errorf("attempts = %d, want unchanged 2", got)
	}
	if len(p.observed) != 1 || p.observed[0] {
		t.Error("decay must persist with observed=false")
	}

	if _, err := s.Decay(context.Background(), "a", 1.5); err == nil {
		t.Error("expected error for amount out of range")
	}
}

func TestDecaySubtractsFlatAmount(t *testing.T) {
	g := testGraph(t)
	p := &stubPersister{rows: []store.MasteryRow{
		{StudentID: "student", ConceptID: "a", Probability: 0.20},
	}}
	s := New(g, "student", "1ro de secundaria", WithPersister(p))
	if err := s.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}

	// A weak prerequisite drops by the full amount, not a fraction of
	// what little is left.
	u, err := s.Decay(context.Background(), "a", DefaultPrereqDecay)
	if err != nil {
		t.Fatalf("decay: %v", err)
	}
	if !approx(u.After, 0.05) {
		t.Errorf("after = %v, want 0.05", u.After)
	}

	// Repeated decay bottoms out at the floor.
	if _, err := s.Decay(context.Background(), "a", DefaultPrereqDecay); err != nil {
		t.Fatalf("decay: %v", err)
	}
	if got := s.Probability("a"); !approx(got, DecayFloor) {
		t.Errorf("floored probability = %v, want %v", got, DecayFloor)
	}
}

func TestPersistenceFailureKeepsMemoryAuthoritative(t *testing.T) {
	g := testGraph(t)
	boom := &store.PersistenceError{Op: "save", Err: errors.New("disk full")}
	p := &stubPersister{failWith: boom}
	s := New(g, "student", "1ro de secundaria", WithPersister(p))

	u, err := s.RecordObservation(context.Background(), "a", true)
	var pe *store.PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("error type = %T, want *store.PersistenceError", err)
	}
	// Memory advanced despite the lost write.
	if got := s.Probability("a"); !approx(got, u.After) {
		t.Errorf("memory = %v, want %v", got, u.After)
	}
	if u.After <= u.Before {
		t.Error("correct answer must raise the estimate")
	}
}

func TestLookupDrivesReadiness(t *testing.T) {
	g := testGraph(t)
	p := &stubPersister{rows: []store.MasteryRow{
		{StudentID: "student", ConceptID: "a", Probability: 0.9},
	}}
	s := New(g, "student", "1ro de secundaria", WithPersister(p))
	if err := s.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}

	if !g.IsReady("b", s.Lookup()) {
		t.Error("b should be ready with a mastered")
	}
	if g.IsReady("c", s.Lookup()) {
		t.Error("c should not be ready while b is below threshold")
	}
}
