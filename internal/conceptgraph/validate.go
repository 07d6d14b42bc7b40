package conceptgraph

import (
	"fmt"
	"strings"
)

// GraphError reports all structural problems found while loading a graph.
// It is fatal: a graph that fails validation is never constructed.
type GraphError struct {
	Problems []string
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("concept graph validation failed:\n  %s", strings.Join(e.Problems, "\n  "))
}

// validate performs all structural checks on the node and edge sets.
// Returns a *GraphError describing every problem found, or nil if valid.
func validate(concepts []Concept, edges []Edge) error {
	var errs []string

	idSet := make(map[string]bool, len(concepts))
	for _, c := range concepts {
		if c.ID == "" {
			errs = append(errs, "concept with empty ID")
			continue
		}
		if idSet[c.ID] {
			errs = append(errs, fmt.Sprintf("duplicate concept ID: %q", c.ID))
		}
		idSet[c.ID] = true
	}

	// Dangling edge endpoints.
	for _, e := range edges {
		if !idSet[e.From] {
			errs = append(errs, fmt.Sprintf("edge references nonexistent concept %q", e.From))
		}
		if !idSet[e.To] {
			errs = append(errs, fmt.Sprintf("edge references nonexistent concept %q", e.To))
		}
	}

	// Cycle check via Kahn's algorithm over the valid edges.
	inDegree := make(map[string]int, len(concepts))
	adj := make(map[string][]string)
	for id := range idSet {
		inDegree[id] = 0
	}
	for _, e := range edges {
		if !idSet[e.From] || !idSet[e.To] {
			continue
		}
		inDegree[e.To]++
		adj[e.From] = append(adj[e.From], e.To)
	}

	var queue []string
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, next := range adj[id] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if visited < len(idSet) {
		var cycleNodes []string
		for _, c := range concepts {
			if inDegree[c.ID] > 0 {
				cycleNodes = append(cycleNodes, c.ID)
			}
		}
		errs = append(errs, fmt.Sprintf("cycle detected involving concepts: %s", strings.Join(cycleNodes, ", ")))
	}

	if len(errs) > 0 {
		return &GraphError{Problems: errs}
	}
	return nil
}
