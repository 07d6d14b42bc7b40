package conceptgraph

// Concept is a single curriculum node. Immutable after the graph is loaded.
type Concept struct {
	ID      string
	Name    string
	Subject string
	Grade   string
}

// Edge is a prerequisite relation: From must be mastered before To is ready.
type Edge struct {
	From string
	To   string
}

// MasteryLookup reports the current mastery probability for a concept.
// Implementations return the default prior for concepts never practiced.
type MasteryLookup func(conceptID string) float64

// DefaultMasteryThreshold is the mastery probability above which a concept
// counts as mastered for readiness checks.
const DefaultMasteryThreshold = 0.8
