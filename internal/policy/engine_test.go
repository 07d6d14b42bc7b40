package policy

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sabilabs/sabi/internal/conceptgraph"
	"github.com/sabilabs/sabi/internal/itembank"
	"github.com/sabilabs/sabi/internal/itemgen"
	"github.com/sabilabs/sabi/internal/mastery"
	"github.com/sabilabs/sabi/internal/store"
)

type recordingPersister struct {
	rows     []store.MasteryRow
	failWith error
}

func (p *recordingPersister) UpsertMastery(_ context.Context, _, _ string, _ float64, _ bool) error {
	return p.failWith
}

func (p *recordingPersister) MasteryForStudent(_ context.Context, _ string) ([]store.MasteryRow, error) {
	return p.rows, nil
}

func testGraph(t *testing.T) *conceptgraph.Graph {
	t.Helper()
	g, err := conceptgraph.Load(
		[]conceptgraph.Concept{
			{ID: "a", Name: "Fracciones", Subject: "Aritmética", Grade: "1ro de secundaria"},
			{ID: "b", Name: "Ecuaciones de primer grado", Subject: "Aritmética", Grade: "1ro de secundaria"},
			{ID: "c", Name: "Ecuaciones cuadráticas", Subject: "Aritmética", Grade: "1ro de secundaria"},
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

func bankItem(conceptID string, n int, d itembank.Difficulty) itembank.Item {
	return itembank.Item{
		ID:            fmt.Sprintf("%s-%s-%d", conceptID, d, n),
		ConceptID:     conceptID,
		Question:      fmt.Sprintf("Pregunta %d de %s (%s)", n, conceptID, d),
		Options:       []string{"1", "2", "3", "4"},
		CorrectAnswer: "1",
		Explanation:   "Porque sí.",
		Difficulty:    d,
	}
}

func testBank(t *testing.T, g *conceptgraph.Graph) *itembank.Bank {
	t.Helper()
	b := itembank.NewBank(rand.New(rand.NewSource(7)))
	for _, c := range g.TopologicalOrder() {
		for _, d := range []itembank.Difficulty{itembank.Easy, itembank.Medium, itembank.Hard} {
			for n := 1; n <= 3; n++ {
				if err := b.Add(bankItem(c.ID, n, d)); err != nil {
					t.Fatalf("seed bank: %v", err)
				}
			}
		}
	}
	return b
}

// newTestEngine builds an engine over the a -> b -> c graph with the given
// starting probabilities.
func newTestEngine(t *testing.T, probs map[string]float64, cfg Config, opts ...Option) (*Engine, *mastery.Store) {
	t.Helper()
	g := testGraph(t)

	var rows []store.MasteryRow
	for id, p := range probs {
		rows = append(rows, store.MasteryRow{StudentID: "s1", ConceptID: id, Probability: p})
	}
	ms := mastery.New(g, "s1", "1ro de secundaria",
		mastery.WithPersister(&recordingPersister{rows: rows}))
	if err := ms.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}

	return New(g, testBank(t, g), ms, cfg, opts...), ms
}

func mustStep(t *testing.T, e *Engine) *Step {
	t.Helper()
	step, err := e.NextItem(context.Background())
	if err != nil {
		t.Fatalf("next item: %v", err)
	}
	return step
}

func TestSelectTopicPinsConcept(t *testing.T) {
	e, _ := newTestEngine(t, nil, DefaultConfig())

	if err := e.SelectTopic("cuadráticas"); err != nil {
		t.Fatalf("select topic: %v", err)
	}

	step := mustStep(t, e)
	if step.ConceptID != "c" {
		t.Errorf("concept = %q, want c", step.ConceptID)
	}
	if step.State != StateAwaitingResponse {
		t.Errorf("state = %q", step.State)
	}
}

func TestSelectTopicUnknown(t *testing.T) {
	e, _ := newTestEngine(t, nil, DefaultConfig())

	err := e.SelectTopic("historia universal")
	if !errors.Is(err, ErrUnknownTopic) {
		t.Errorf("err = %v, want ErrUnknownTopic", err)
	}
}

func TestDefaultSelectionFollowsGraphOrder(t *testing.T) {
	// a is mastered, so the first ready unmastered concept is b.
	e, _ := newTestEngine(t, map[string]float64{"a": 0.9, "b": 0.3}, DefaultConfig())

	if err := e.Explore(); err != nil {
		t.Fatalf("explore: %v", err)
	}
	step := mustStep(t, e)
	if step.ConceptID != "b" {
		t.Errorf("concept = %q, want b", step.ConceptID)
	}
}

func TestExplorePicksLowestMasteryReady(t *testing.T) {
	// Both a and b are ready (a's prereqs trivially, b because a >= 0.8)
	// and unmastered; b has the lower estimate.
	e, _ := newTestEngine(t, map[string]float64{"a": 0.79, "b": 0.1}, DefaultConfig())

	if err := e.Explore(); err != nil {
		t.Fatalf("explore: %v", err)
	}
	step := mustStep(t, e)
	if step.ConceptID != "a" {
		// b is not ready while a < 0.8, so a wins despite higher mastery.
		t.Errorf("concept = %q, want a", step.ConceptID)
	}
}

func TestGoalCompleteWhenScopeMastered(t *testing.T) {
	e, _ := newTestEngine(t, map[string]float64{"a": 0.9, "b": 0.9, "c": 0.95}, DefaultConfig())

	if err := e.Explore(); err != nil {
		t.Fatalf("explore: %v", err)
	}
	step := mustStep(t, e)
	if !step.GoalComplete {
		t.Fatal("expected goal complete")
	}
	if e.State() != StateFinished {
		t.Errorf("state = %q, want finished", e.State())
	}
}

func TestDifficultyFollowsMasteryBand(t *testing.T) {
	e, _ := newTestEngine(t, map[string]float64{"a": 0.2}, DefaultConfig())

	if err := e.SelectTopic("fracciones"); err != nil {
		t.Fatalf("select topic: %v", err)
	}
	step := mustStep(t, e)
	if step.Item.Difficulty != itembank.Easy {
		t.Errorf("difficulty = %q, want easy at mastery 0.2", step.Item.Difficulty)
	}
}

func TestDifficultyOverride(t *testing.T) {
	e, _ := newTestEngine(t, map[string]float64{"a": 0.2}, DefaultConfig())

	if err := e.SelectTopic("fracciones"); err != nil {
		t.Fatalf("select topic: %v", err)
	}
	if err := e.SetDifficulty(itembank.Hard); err != nil {
		t.Fatalf("set difficulty: %v", err)
	}
	step := mustStep(t, e)
	if step.Item.Difficulty != itembank.Hard {
		t.Errorf("difficulty = %q, want hard override", step.Item.Difficulty)
	}

	e2, _ := newTestEngine(t, map[string]float64{"a": 0.2}, DefaultConfig())
	if err := e2.SelectTopic("fracciones"); err != nil {
		t.Fatalf("select topic: %v", err)
	}
	if err := e2.SetDifficulty(itembank.Hard); err != nil {
		t.Fatalf("set difficulty: %v", err)
	}
	e2.ClearDifficulty()
	step = mustStep(t, e2)
	if step.Item.Difficulty != itembank.Easy {
		t.Errorf("difficulty = %q, want easy after clear", step.Item.Difficulty)
	}
}

func TestItemsNotRepeatedWithinSession(t *testing.T) {
	cfg := DefaultConfig()
	cfg.QuizLength = 3
	e, _ := newTestEngine(t, map[string]float64{"a": 0.2}, cfg)

	if err := e.SelectTopic("fracciones"); err != nil {
		t.Fatalf("select topic: %v", err)
	}

	seen := make(map[string]bool)
	for range 3 {
		step := mustStep(t, e)
		if seen[step.Item.ID] {
			t.Fatalf("item %s served twice", step.Item.ID)
		}
		seen[step.Item.ID] = true
		if _, err := e.RecordResponse(context.Background(), Response{Correct: true, ChosenOption: "1"}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
}

type fixedGenerator struct {
	item itembank.Item
	err  error
}

func (g fixedGenerator) Generate(_ context.Context, input itemgen.GenerateInput) (itembank.Item, error) {
	if g.err != nil {
		return itembank.Item{}, g.err
	}
	it := g.item
	it.ConceptID = input.Concept.ID
	return it, nil
}

func TestGeneratedItemServedAndAdmitted(t *testing.T) {
	gen := fixedGenerator{item: itembank.Item{
		ID:            "gen-1",
		Question:      "¿Cuánto es 1/2 + 1/4?",
		Options:       []string{"3/4", "2/6", "1/4", "2/4"},
		CorrectAnswer: "3/4",
		Explanation:   "Denominador común 4.",
		Difficulty:    itembank.Easy,
		Generated:     true,
	}}
	svc := itemgen.NewService(gen, time.Second)

	e, _ := newTestEngine(t, map[string]float64{"a": 0.2}, DefaultConfig(), WithGenerator(svc))
	if err := e.SelectTopic("fracciones"); err != nil {
		t.Fatalf("select topic: %v", err)
	}

	step := mustStep(t, e)
	if step.Item.ID != "gen-1" {
		t.Errorf("item = %q, want generated gen-1", step.Item.ID)
	}
	if step.Degraded {
		t.Error("step marked degraded on successful generation")
	}
}

func TestGenerationFailureFallsBackToBank(t *testing.T) {
	svc := itemgen.NewService(fixedGenerator{err: errors.New("model down")}, time.Second)

	e, _ := newTestEngine(t, map[string]float64{"a": 0.2}, DefaultConfig(), WithGenerator(svc))
	if err := e.SelectTopic("fracciones"); err != nil {
		t.Fatalf("select topic: %v", err)
	}

	step := mustStep(t, e)
	if !step.Degraded {
		t.Error("expected degraded step after generation failure")
	}
	if step.Item.ConceptID != "a" || step.Item.Generated {
		t.Errorf("fallback item = %+v, want seed item for a", step.Item)
	}
}

type capturingGenerator struct {
	mu     sync.Mutex
	inputs []itemgen.GenerateInput
	item   itembank.Item
}

func (g *capturingGenerator) Generate(_ context.Context, input itemgen.GenerateInput) (itembank.Item, error) {
	g.mu.Lock()
	g.inputs = append(g.inputs, input)
	n := len(g.inputs)
	g.mu.Unlock()
	it := g.item
	it.ConceptID = input.Concept.ID
	it.ID = fmt.Sprintf("gen-%d", n)
	it.Question = fmt.Sprintf("%s (v%d)", g.item.Question, n)
	return it, nil
}

func (g *capturingGenerator) input(t *testing.T, i int) itemgen.GenerateInput {
	t.Helper()
	g.mu.Lock()
	defer g.mu.Unlock()
	if i >= len(g.inputs) {
		t.Fatalf("generator called %d times, want input %d", len(g.inputs), i)
	}
	return g.inputs[i]
}

func TestGenerationUsesArchivedErrorsUntilSessionHasOwn(t *testing.T) {
	gen := &capturingGenerator{item: itembank.Item{
		Question:      "¿Cuánto es 1/2 + 1/4?",
		Options:       []string{"3/4", "2/6", "1/4", "2/4"},
		CorrectAnswer: "3/4",
		Explanation:   "Denominador común 4.",
		Difficulty:    itembank.Easy,
		Generated:     true,
	}}
	svc := itemgen.NewService(gen, time.Second)

	archived := []string{`eligió "2/6" en "1/3 + 1/3" (correcto: "2/3")`}
	history := func(_ context.Context, conceptID string, _ int) ([]string, error) {
		if conceptID != "a" {
			t.Errorf("history queried for %q, want a", conceptID)
		}
		return archived, nil
	}

	e, _ := newTestEngine(t, map[string]float64{"a": 0.2}, DefaultConfig(),
		WithGenerator(svc), WithErrorHistory(history))
	if err := e.SelectTopic("fracciones"); err != nil {
		t.Fatalf("select topic: %v", err)
	}

	step := mustStep(t, e)
	if got := gen.input(t, 0).RecentErrors; len(got) != 1 || got[0] != archived[0] {
		t.Errorf("first prompt errors = %v, want archived %v", got, archived)
	}

	// A mistake in this session takes over from the archive.
	if _, err := e.RecordResponse(context.Background(), Response{Correct: false, ChosenOption: "2/6"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	mustStep(t, e)
	got := gen.input(t, 1).RecentErrors
	if len(got) != 1 || !strings.Contains(got[0], step.Item.Question) {
		t.Errorf("second prompt errors = %v, want the in-session mistake on %q", got, step.Item.Question)
	}
}

type slowGenerator struct{}

func (slowGenerator) Generate(ctx context.Context, _ itemgen.GenerateInput) (itembank.Item, error) {
	<-ctx.Done()
	return itembank.Item{}, ctx.Err()
}

func TestGenerationTimeoutFallsBackToBank(t *testing.T) {
	svc := itemgen.NewService(slowGenerator{}, time.Minute)

	cfg := DefaultConfig()
	cfg.GenerationTimeout = 50 * time.Millisecond
	e, _ := newTestEngine(t, map[string]float64{"a": 0.2}, cfg, WithGenerator(svc))
	if err := e.SelectTopic("fracciones"); err != nil {
		t.Fatalf("select topic: %v", err)
	}

	step := mustStep(t, e)
	if !step.Degraded {
		t.Error("expected degraded step after generation timeout")
	}
}

func TestCorrectAnswerRaisesMastery(t *testing.T) {
	e, ms := newTestEngine(t, map[string]float64{"a": 0.3}, DefaultConfig())
	if err := e.SelectTopic("fracciones"); err != nil {
		t.Fatalf("select topic: %v", err)
	}
	mustStep(t, e)

	out, err := e.RecordResponse(context.Background(), Response{Correct: true, ChosenOption: "1"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if out.Update.After <= out.Update.Before {
		t.Errorf("mastery did not rise: %+v", out.Update)
	}
	if got := ms.Probability("a"); got != out.Update.After {
		t.Errorf("store probability = %v, update after = %v", got, out.Update.After)
	}
	if len(out.PrereqDecays) != 0 {
		t.Errorf("unexpected decay on a correct answer: %+v", out.PrereqDecays)
	}
}

func TestWrongAnswerDecaysPrerequisites(t *testing.T) {
	e, ms := newTestEngine(t, map[string]float64{"a": 0.8, "b": 0.5}, DefaultConfig())
	if err := e.SelectTopic("primer grado"); err != nil {
		t.Fatalf("select topic: %v", err)
	}
	mustStep(t, e)

	out, err := e.RecordResponse(context.Background(), Response{Correct: false, ChosenOption: "2"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(out.PrereqDecays) != 1 || out.PrereqDecays[0].ConceptID != "a" {
		t.Fatalf("decays = %+v, want one for a", out.PrereqDecays)
	}
	want := 0.8 - DefaultConfig().PrereqDecay
	if got := ms.Probability("a"); got != want {
		t.Errorf("a after decay = %v, want %v", got, want)
	}
}

func TestQuizFinishOpensDecisionGate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.QuizLength = 2
	// a is weak (< 0.45); c's only prerequisite b stays above
	// ReadyThreshold after one miss and one hit from 0.75.
	e, _ := newTestEngine(t, map[string]float64{"a": 0.3, "b": 0.75}, cfg)
	if err := e.SelectTopic("primer grado"); err != nil {
		t.Fatalf("select topic: %v", err)
	}

	mustStep(t, e)
	out, err := e.RecordResponse(context.Background(), Response{Correct: false, ChosenOption: "3"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if out.State != StateSelectingConcept || out.Decision != nil {
		t.Fatalf("mid-quiz outcome: state=%q decision=%v", out.State, out.Decision)
	}

	mustStep(t, e)
	out, err = e.RecordResponse(context.Background(), Response{Correct: true, ChosenOption: "1"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if out.State != StateFinished {
		t.Fatalf("state = %q, want finished", out.State)
	}
	if out.Decision == nil {
		t.Fatal("expected decision context")
	}
	if out.Decision.Accuracy != 0.5 {
		t.Errorf("accuracy = %v, want 0.5", out.Decision.Accuracy)
	}
	if len(out.Decision.WeakPrerequisites) != 1 || out.Decision.WeakPrerequisites[0] != "a" {
		t.Errorf("weak prereqs = %v, want [a]", out.Decision.WeakPrerequisites)
	}
	if len(out.Decision.ReadySuccessors) != 1 || out.Decision.ReadySuccessors[0] != "c" {
		t.Errorf("ready successors = %v, want [c]", out.Decision.ReadySuccessors)
	}
}

func TestDecisionGateOrdersSuggestionsByMastery(t *testing.T) {
	grade := "1ro de secundaria"
	concept := func(id, name string) conceptgraph.Concept {
		return conceptgraph.Concept{ID: id, Name: name, Subject: "Aritmética", Grade: grade}
	}
	g, err := conceptgraph.Load(
		[]conceptgraph.Concept{
			concept("w1", "Números enteros"),
			concept("w2", "Números decimales"),
			concept("m", "Fracciones"),
			concept("s1", "Proporcionalidad"),
			concept("s2", "Porcentajes"),
			concept("s3", "Razones"),
			concept("s4", "Potencias"),
			concept("s5", "Raíces"),
		},
		[]conceptgraph.Edge{
			{From: "w1", To: "m"}, {From: "w2", To: "m"},
			{From: "m", To: "s1"}, {From: "m", To: "s2"}, {From: "m", To: "s3"},
			{From: "m", To: "s4"}, {From: "m", To: "s5"},
		},
	)
	if err != nil {
		t.Fatalf("load graph: %v", err)
	}

	var rows []store.MasteryRow
	for id, p := range map[string]float64{
		"w1": 0.40, "w2": 0.20, "m": 0.70,
		"s1": 0.50, "s2": 0.30, "s3": 0.45, "s4": 0.10, "s5": 0.25,
	} {
		rows = append(rows, store.MasteryRow{StudentID: "s1", ConceptID: id, Probability: p})
	}
	ms := mastery.New(g, "s1", grade, mastery.WithPersister(&recordingPersister{rows: rows}))
	if err := ms.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}

	cfg := DefaultConfig()
	cfg.QuizLength = 1
	e := New(g, testBank(t, g), ms, cfg)
	if err := e.SelectTopic("fracciones"); err != nil {
		t.Fatalf("select topic: %v", err)
	}
	mustStep(t, e)
	out, err := e.RecordResponse(context.Background(), Response{Correct: true, ChosenOption: "1"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if out.Decision == nil {
		t.Fatal("expected decision context")
	}

	// Weakest prerequisite first.
	if got, want := out.Decision.WeakPrerequisites, []string{"w2", "w1"}; !slices.Equal(got, want) {
		t.Errorf("weak prerequisites = %v, want %v", got, want)
	}
	// Strongest successor first, capped at four; s4 drops off.
	if got, want := out.Decision.ReadySuccessors, []string{"s1", "s3", "s2", "s5"}; !slices.Equal(got, want) {
		t.Errorf("ready successors = %v, want %v", got, want)
	}
}

func finishQuiz(t *testing.T, e *Engine, topic string) {
	t.Helper()
	if err := e.SetQuizLength(1); err != nil {
		t.Fatalf("quiz length: %v", err)
	}
	if err := e.SelectTopic(topic); err != nil {
		t.Fatalf("select topic: %v", err)
	}
	mustStep(t, e)
	if _, err := e.RecordResponse(context.Background(), Response{Correct: true, ChosenOption: "1"}); err != nil {
		t.Fatalf("record: %v", err)
	}
}

func TestDecideRetryRepeatsConcept(t *testing.T) {
	e, _ := newTestEngine(t, nil, DefaultConfig())
	finishQuiz(t, e, "primer grado")

	if err := e.Decide(DecideRetry, ""); err != nil {
		t.Fatalf("decide: %v", err)
	}
	step := mustStep(t, e)
	if step.ConceptID != "b" {
		t.Errorf("concept after retry = %q, want b", step.ConceptID)
	}
	if answered, _ := e.Progress(); answered != 0 {
		t.Errorf("answered = %d, want counters reset", answered)
	}
}

func TestDecideReviewGoesToWeakestPrerequisite(t *testing.T) {
	e, _ := newTestEngine(t, map[string]float64{"a": 0.2}, DefaultConfig())
	finishQuiz(t, e, "primer grado")

	if err := e.Decide(DecideReview, ""); err != nil {
		t.Fatalf("decide: %v", err)
	}
	step := mustStep(t, e)
	if step.ConceptID != "a" {
		t.Errorf("concept after review = %q, want a", step.ConceptID)
	}
}

func TestDecideAdvanceGoesToReadySuccessor(t *testing.T) {
	e, _ := newTestEngine(t, map[string]float64{"a": 0.9, "b": 0.9}, DefaultConfig())
	finishQuiz(t, e, "primer grado")

	if err := e.Decide(DecideAdvance, ""); err != nil {
		t.Fatalf("decide: %v", err)
	}
	step := mustStep(t, e)
	if step.ConceptID != "c" {
		t.Errorf("concept after advance = %q, want c", step.ConceptID)
	}
}

func TestDecideWithNamedTopic(t *testing.T) {
	e, _ := newTestEngine(t, nil, DefaultConfig())
	finishQuiz(t, e, "primer grado")

	if err := e.Decide(DecideAdvance, "fracciones"); err != nil {
		t.Fatalf("decide: %v", err)
	}
	step := mustStep(t, e)
	if step.ConceptID != "a" {
		t.Errorf("concept = %q, want a", step.ConceptID)
	}
}

func TestPauseResumeRestoresState(t *testing.T) {
	e, _ := newTestEngine(t, nil, DefaultConfig())
	if err := e.SelectTopic("fracciones"); err != nil {
		t.Fatalf("select topic: %v", err)
	}
	mustStep(t, e)

	if err := e.Pause(); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if e.State() != StatePaused {
		t.Fatalf("state = %q", e.State())
	}
	if _, err := e.NextItem(context.Background()); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("next item while paused: %v", err)
	}

	if err := e.Resume(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if e.State() != StateAwaitingResponse {
		t.Errorf("state after resume = %q, want awaiting_response", e.State())
	}
	if _, err := e.RecordResponse(context.Background(), Response{Correct: true, ChosenOption: "1"}); err != nil {
		t.Errorf("record after resume: %v", err)
	}
}

func TestInvalidTransitions(t *testing.T) {
	e, _ := newTestEngine(t, nil, DefaultConfig())

	if _, err := e.NextItem(context.Background()); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("next item before topic choice: %v", err)
	}
	if _, err := e.RecordResponse(context.Background(), Response{}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("record before serving an item: %v", err)
	}
	if err := e.Decide(DecideRetry, ""); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("decide before quiz end: %v", err)
	}
	if err := e.Resume(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("resume while not paused: %v", err)
	}
}

func TestPersistenceErrorSurfacedMemoryAdvances(t *testing.T) {
	g := testGraph(t)
	p := &recordingPersister{failWith: &store.PersistenceError{Op: "upsert mastery", Err: errors.New("disk full")}}
	ms := mastery.New(g, "s1", "1ro de secundaria", mastery.WithPersister(p))

	e := New(g, testBank(t, g), ms, DefaultConfig())
	if err := e.SelectTopic("fracciones"); err != nil {
		t.Fatalf("select topic: %v", err)
	}
	mustStep(t, e)

	before := ms.Probability("a")
	out, err := e.RecordResponse(context.Background(), Response{Correct: true, ChosenOption: "1"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if out.PersistenceErr == nil {
		t.Fatal("expected persistence error surfaced")
	}
	var pe *store.PersistenceError
	if !errors.As(out.PersistenceErr, &pe) {
		t.Errorf("err = %v, want *store.PersistenceError", out.PersistenceErr)
	}
	if ms.Probability("a") <= before {
		t.Error("memory state must advance despite the lost write")
	}
}
