package itembank

import "fmt"

// Difficulty is the discrete difficulty label attached to every item.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty maps a user- or LLM-supplied label to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case Easy, Medium, Hard:
		return Difficulty(s), nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// ForMastery picks the difficulty band matching a mastery probability:
// below 0.4 easy, 0.4 to 0.7 medium, above 0.7 hard.
func ForMastery(p float64) Difficulty {
	switch {
	case p < 0.4:
		return Easy
	case p <= 0.7:
		return Medium
	default:
		return Hard
	}
}

// OptionCount is the fixed number of answer options per item. The
// generation schema (itemgen.ItemSchema) and every seed item are written
// to it, so Validate requires exactly this many rather than a minimum.
const OptionCount = 4

// Item is one multiple-choice question ready for display.
type Item struct {
	// ID uniquely identifies the item. Generated items get a UUID;
	// seed items carry stable handwritten IDs.
	ID string

	// ConceptID is the concept this item exercises.
	ConceptID string

	// Question is the prompt shown to the student. Spanish, plain text.
	Question string

	// Options holds exactly 4 choices, one of which equals CorrectAnswer.
	Options []string

	// CorrectAnswer is the text of the correct option.
	CorrectAnswer string

	// Explanation is a brief worked solution shown after the answer.
	Explanation string

	// Difficulty is the band this item was written or generated for.
	Difficulty Difficulty

	// Generated marks items produced by the LLM rather than the seed bank.
	Generated bool
}

// Validate checks the structural invariants every admitted item must hold.
func (it Item) Validate() error {
	if it.ID == "" {
		return fmt.Errorf("item missing ID")
	}
	if it.ConceptID == "" {
		return fmt.Errorf("item %s missing concept", it.ID)
	}
	if it.Question == "" {
		return fmt.Errorf("item %s missing question", it.ID)
	}
	if len(it.Options) != OptionCount {
		return fmt.Errorf("item %s has %d options, want %d", it.ID, len(it.Options), OptionCount)
	}
	if _, err := ParseDifficulty(string(it.Difficulty)); err != nil {
		return fmt.Errorf("item %s: %w", it.ID, err)
	}

	seen := make(map[string]bool, OptionCount)
	found := false
	for _, opt := range it.Options {
		if opt == "" {
			return fmt.Errorf("item %s has an empty option", it.ID)
		}
		if seen[opt] {
			return fmt.Errorf("item %s has duplicate option %q", it.ID, opt)
		}
		seen[opt] = true
		if opt == it.CorrectAnswer {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("item %s: correct answer not among options", it.ID)
	}
	return nil
}
