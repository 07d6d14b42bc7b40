package conceptgraph

import (
	"fmt"
	"slices"
	"sort"
)

// Graph is the prerequisite DAG over concepts with precomputed indices.
// Construct with Load; a Graph is immutable and safe for concurrent reads.
type Graph struct {
	concepts   []Concept
	byID       map[string]*Concept
	prereqs    map[string][]string
	dependents map[string][]string
	topoOrder  []Concept
	topoIndex  map[string]int
	depths     map[string]int
	threshold  float64
}

// Load validates the node and edge sets and builds the graph.
// It fails with a *GraphError on duplicate IDs, dangling references, or
// cycles, leaving no partial graph behind.
func Load(concepts []Concept, edges []Edge) (*Graph, error) {
	if err := validate(concepts, edges); err != nil {
		return nil, err
	}

	g := &Graph{
		concepts:   slices.Clone(concepts),
		byID:       make(map[string]*Concept, len(concepts)),
		prereqs:    make(map[string][]string),
		dependents: make(map[string][]string),
		topoIndex:  make(map[string]int, len(concepts)),
		depths:     make(map[string]int, len(concepts)),
		threshold:  DefaultMasteryThreshold,
	}

	for i := range g.concepts {
		g.byID[g.concepts[i].ID] = &g.concepts[i]
	}
	for _, e := range edges {
		g.prereqs[e.To] = append(g.prereqs[e.To], e.From)
		g.dependents[e.From] = append(g.dependents[e.From], e.To)
	}

	// Topological sort (Kahn's algorithm) with sorted queues so the order
	// is deterministic across runs.
	inDegree := make(map[string]int, len(concepts))
	for _, c := range g.concepts {
		inDegree[c.ID] = len(g.prereqs[c.ID])
	}

	var queue []string
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		g.topoIndex[id] = len(g.topoOrder)
		g.topoOrder = append(g.topoOrder, *g.byID[id])

		deps := slices.Clone(g.dependents[id])
		sort.Strings(deps)
		for _, depID := range deps {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	// Depth = longest prerequisite chain above the concept. Topological
	// order guarantees prerequisites are resolved before their dependents.
	for _, c := range g.topoOrder {
		d := 0
		for _, p := range g.prereqs[c.ID] {
			if g.depths[p]+1 > d {
				d = g.depths[p] + 1
			}
		}
		g.depths[c.ID] = d
	}

	return g, nil
}

// SetMasteryThreshold overrides the readiness threshold (default 0.8).
func (g *Graph) SetMasteryThreshold(t float64) {
	g.threshold = t
}

// MasteryThreshold returns the configured readiness threshold.
func (g *Graph) MasteryThreshold() float64 {
	return g.threshold
}

// Concept returns a concept by ID, or an error if not found.
func (g *Graph) Concept(id string) (Concept, error) {
	c, ok := g.byID[id]
	if !ok {
		return Concept{}, fmt.Errorf("concept not found: %q", id)
	}
	return *c, nil
}

// Contains reports whether the graph has a concept with the given ID.
func (g *Graph) Contains(id string) bool {
	_, ok := g.byID[id]
	return ok
}

// All returns all concepts in load order.
func (g *Graph) All() []Concept {
	return slices.Clone(g.concepts)
}

// PrerequisitesOf returns the direct prerequisite IDs of a concept.
func (g *Graph) PrerequisitesOf(id string) []string {
	return slices.Clone(g.prereqs[id])
}

// SuccessorsOf returns the IDs of concepts that directly depend on id.
func (g *Graph) SuccessorsOf(id string) []string {
	return slices.Clone(g.dependents[id])
}

// IsReady reports whether every prerequisite of the concept meets the
// mastery threshold. Concepts with no prerequisites are always ready.
func (g *Graph) IsReady(id string, mastery MasteryLookup) bool {
	if _, ok := g.byID[id]; !ok {
		return false
	}
	for _, p := range g.prereqs[id] {
		if mastery(p) < g.threshold {
			return false
		}
	}
	return true
}

// TopologicalOrder returns all concepts in a valid topological order,
// lowest-depth concepts first. The order is stable across runs.
func (g *Graph) TopologicalOrder() []Concept {
	return slices.Clone(g.topoOrder)
}

// TopoIndex returns the position of a concept in the topological order.
// Unknown IDs sort last.
func (g *Graph) TopoIndex(id string) int {
	if i, ok := g.topoIndex[id]; ok {
		return i
	}
	return len(g.topoOrder)
}

// Depth returns the length of the longest prerequisite chain above the
// concept (roots have depth 0). Unknown IDs report depth 2, matching the
// prior heuristics for unclassified concepts.
func (g *Graph) Depth(id string) int {
	if d, ok := g.depths[id]; ok {
		return d
	}
	return 2
}

// Scope returns the concepts matching the subject and grade filters, in
// topological order. Empty filter strings match everything.
func (g *Graph) Scope(subject, grade string) []Concept {
	var result []Concept
	for _, c := range g.topoOrder {
		if (subject == "" || c.Subject == subject) && (grade == "" || c.Grade == grade) {
			result = append(result, c)
		}
	}
	return result
}

// Subjects returns the distinct subjects in the graph, sorted.
func (g *Graph) Subjects() []string {
	seen := make(map[string]bool)
	var result []string
	for _, c := range g.concepts {
		if !seen[c.Subject] {
			seen[c.Subject] = true
			result = append(result, c.Subject)
		}
	}
	sort.Strings(result)
	return result
}

// Grades returns the distinct grades in the graph, sorted.
func (g *Graph) Grades() []string {
	seen := make(map[string]bool)
	var result []string
	for _, c := range g.concepts {
		if !seen[c.Grade] {
			seen[c.Grade] = true
			result = append(result, c.Grade)
		}
	}
	sort.Strings(result)
	return result
}
