package itemgen

import "time"

// Config bounds item generation.
type Config struct {
	// MaxTokens caps the response size for one item.
	MaxTokens int

	// Temperature adds variety between generated items.
	Temperature float64

	// Timeout bounds one generation before the engine falls back to the
	// local bank. Kept short so the student never stares at a spinner.
	Timeout time.Duration

	// MaxPriorQuestions limits how many already-served questions go into
	// the dedup section of the prompt.
	MaxPriorQuestions int

	// MaxRecentErrors limits how many recent mistakes are described.
	MaxRecentErrors int
}

// DefaultConfig returns the production generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:         1024,
		Temperature:       0.7,
		Timeout:           6 * time.Second,
		MaxPriorQuestions: 10,
		MaxRecentErrors:   5,
	}
}
