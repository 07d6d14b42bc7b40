package conceptgraph

import (
	"errors"
	"strings"
	"testing"
)

func linearGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := Load(
		[]Concept{
			{ID: "a1", Name: "Sumas", Subject: "Aritmética", Grade: "1ro de secundaria"},
			{ID: "a2", Name: "Restas", Subject: "Aritmética", Grade: "1ro de secundaria"},
			{ID: "a3", Name: "Multiplicación", Subject: "Aritmética", Grade: "2do de secundaria"},
		},
		[]Edge{
			{From: "a1", To: "a2"},
			{From: "a2", To: "a3"},
		},
	)
	if err != nil {
		t.Fatalf("load linear graph: %v", err)
	}
	return g
}

func flatMastery(p float64) MasteryLookup {
	return func(string) float64 { return p }
}

func TestLoad_SeedCurriculumValid(t *testing.T) {
	g, err := LoadDefault()
	if err != nil {
		t.Fatalf("seed curriculum failed validation: %v", err)
	}
	if len(g.All()) == 0 {
		t.Fatal("seed curriculum has no concepts")
	}
	if len(g.TopologicalOrder()) != len(g.All()) {
		t.Errorf("topo order has %d concepts, want %d", len(g.TopologicalOrder()), len(g.All()))
	}
}

func TestLoad_RejectsCycle(t *testing.T) {
	_, err := Load(
		[]Concept{{ID: "a"}, {ID: "b"}},
		[]Edge{{From: "a", To: "b"}, {From: "b", To: "a"}},
	)
	if err == nil {
		t.Fatal("expected error for cycle, got nil")
	}
	var ge *GraphError
	if !errors.As(err, &ge) {
		t.Fatalf("error is %T, want *GraphError", err)
	}
	if !strings.Contains(err.Error(), "cycle") {
		t.Errorf("error should mention cycle, got: %v", err)
	}
}

func TestLoad_RejectsDanglingEdge(t *testing.T) {
	_, err := Load(
		[]Concept{{ID: "a"}},
		[]Edge{{From: "a", To: "ghost"}},
	)
	if err == nil {
		t.Fatal("expected error for dangling edge, got nil")
	}
	if !strings.Contains(err.Error(), "ghost") {
		t.Errorf("error should name the missing concept, got: %v", err)
	}
}

func TestLoad_RejectsDuplicateID(t *testing.T) {
	_, err := Load([]Concept{{ID: "a"}, {ID: "a"}}, nil)
	if err == nil {
		t.Fatal("expected error for duplicate ID, got nil")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("error should mention duplicate, got: %v", err)
	}
}

func TestLoad_ReportsAllProblems(t *testing.T) {
	_, err := Load(
		[]Concept{{ID: "a"}, {ID: "a"}},
		[]Edge{{From: "a", To: "ghost"}},
	)
	var ge *GraphError
	if !errors.As(err, &ge) {
		t.Fatalf("error is %T, want *GraphError", err)
	}
	if len(ge.Problems) < 2 {
		t.Errorf("Problems = %d, want at least 2 (duplicate + dangling)", len(ge.Problems))
	}
}

func TestIsReady_NoPrereqsAlwaysReady(t *testing.T) {
	g, err := LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range g.All() {
		if len(g.PrerequisitesOf(c.ID)) == 0 && !g.IsReady(c.ID, flatMastery(0)) {
			t.Errorf("concept %q has no prerequisites but is not ready", c.ID)
		}
	}
}

func TestIsReady_ThresholdGatesPrereqs(t *testing.T) {
	g := linearGraph(t)

	mastery := func(id string) float64 {
		if id == "a1" {
			return 0.9
		}
		return 0.0
	}
	if !g.IsReady("a2", mastery) {
		t.Error("a2 should be ready with a1 at 0.9")
	}

	weak := func(id string) float64 {
		if id == "a1" {
			return 0.5
		}
		return 0.95 // a2's own mastery is irrelevant to readiness
	}
	if g.IsReady("a2", weak) {
		t.Error("a2 should not be ready with a1 at 0.5")
	}
}

func TestTopologicalOrder_PrereqsFirst(t *testing.T) {
	g, err := LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range g.All() {
		for _, p := range g.PrerequisitesOf(c.ID) {
			if g.TopoIndex(p) >= g.TopoIndex(c.ID) {
				t.Errorf("prerequisite %q sorts after %q in topo order", p, c.ID)
			}
		}
	}
}

func TestTopologicalOrder_Deterministic(t *testing.T) {
	concepts, edges := DefaultCurriculum()
	g1, _ := Load(concepts, edges)
	g2, _ := Load(concepts, edges)

	o1 := g1.TopologicalOrder()
	o2 := g2.TopologicalOrder()
	for i := range o1 {
		if o1[i].ID != o2[i].ID {
			t.Fatalf("topo order differs at %d: %q vs %q", i, o1[i].ID, o2[i].ID)
		}
	}
}

func TestDepth(t *testing.T) {
	g := linearGraph(t)
	tests := []struct {
		id   string
		want int
	}{
		{"a1", 0},
		{"a2", 1},
		{"a3", 2},
		{"unknown", 2},
	}
	for _, tt := range tests {
		if got := g.Depth(tt.id); got != tt.want {
			t.Errorf("Depth(%q) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestMatchTopic(t *testing.T) {
	g, err := LoadDefault()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		topic   string
		subject string
		grade   string
		wantID  string
		wantOK  bool
	}{
		{"polinomios", "", "", "3_ALG_01", true},
		{"Polinomios", "Álgebra", "3ro de secundaria", "3_ALG_01", true},
		{"angulos", "", "", "1_GEO_01", true}, // accent-insensitive
		{"logaritmo", "Álgebra", "", "5_ALG_01", true},
		{"polinomios", "Geometría", "", "", false}, // wrong subject
		{"", "", "", "", false},
		{"quimica organica", "", "", "", false},
	}

	for _, tt := range tests {
		got, ok := g.MatchTopic(tt.topic, tt.subject, tt.grade)
		if ok != tt.wantOK || got != tt.wantID {
			t.Errorf("MatchTopic(%q, %q, %q) = (%q, %v), want (%q, %v)",
				tt.topic, tt.subject, tt.grade, got, ok, tt.wantID, tt.wantOK)
		}
	}
}

func TestInitialPrior(t *testing.T) {
	g := linearGraph(t)

	approx := func(got, want float64) bool {
		diff := got - want
		return diff > -1e-9 && diff < 1e-9
	}

	// Root concept, same grade: 0.60.
	if got := g.InitialPrior("a1", "1ro de secundaria"); !approx(got, 0.60) {
		t.Errorf("InitialPrior(a1) = %v, want 0.60", got)
	}
	// Depth 1, student one grade above: 0.50 + 0.05.
	if got := g.InitialPrior("a2", "2do de secundaria"); !approx(got, 0.55) {
		t.Errorf("InitialPrior(a2, above) = %v, want 0.55", got)
	}
	// Depth 2 concept from grade 2, student in grade 1: 0.40 - 0.10.
	if got := g.InitialPrior("a3", "1ro de secundaria"); !approx(got, 0.30) {
		t.Errorf("InitialPrior(a3, below) = %v, want 0.30", got)
	}
	// Always inside [0.05, 0.85].
	for _, c := range g.All() {
		for _, grade := range []string{"1ro de secundaria", "5to de secundaria", ""} {
			p := g.InitialPrior(c.ID, grade)
			if p < 0.05 || p > 0.85 {
				t.Errorf("InitialPrior(%q, %q) = %v out of range", c.ID, grade, p)
			}
		}
	}
}
