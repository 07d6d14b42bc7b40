// Package policy drives one tutoring session: a state machine that picks
// the next concept and item from the graph, the mastery estimates and the
// bank, applies the knowledge-tracing update on every answer, and runs
// the post-quiz decision gate.
package policy

import (
	"errors"
	"fmt"
	"time"

	"github.com/sabilabs/sabi/internal/itembank"
	"github.com/sabilabs/sabi/internal/mastery"
)

// State is the session phase. Transitions are driven exclusively by the
// typed operations on Engine; the caller never sets a State directly.
type State string

const (
	StateAwaitingTopicChoice State = "awaiting_topic_choice"
	StateSelectingConcept    State = "selecting_concept"
	StateSelectingItem       State = "selecting_item"
	StateAwaitingResponse    State = "awaiting_response"
	StatePaused              State = "paused"
	StateFinished            State = "finished"
)

// ErrInvalidTransition is returned when an operation is not legal in the
// current state.
var ErrInvalidTransition = errors.New("operation not allowed in current state")

// ErrUnknownTopic is returned when a topic request matches no concept in
// scope.
var ErrUnknownTopic = errors.New("no concept matches the requested topic")

// Config carries the tunable policy knobs.
type Config struct {
	// QuizLength is how many answers end the quiz and open the decision
	// gate.
	QuizLength int

	// PrereqDecay is subtracted from each direct prerequisite's mastery
	// when the student answers wrong.
	PrereqDecay float64

	// WeakThreshold marks a prerequisite as weak for the review
	// suggestion.
	WeakThreshold float64

	// ReadyThreshold marks a successor as ready for the advance
	// suggestion.
	ReadyThreshold float64

	// GenerationTimeout bounds the wait for a generated item before
	// falling back to the local bank.
	GenerationTimeout time.Duration
}

// DefaultConfig returns the production policy settings.
func DefaultConfig() Config {
	return Config{
		QuizLength:        5,
		PrereqDecay:       mastery.DefaultPrereqDecay,
		WeakThreshold:     0.45,
		ReadyThreshold:    0.65,
		GenerationTimeout: 6 * time.Second,
	}
}

// Step is what the UI renders after the policy picks the next item.
type Step struct {
	ConceptID string
	Item      itembank.Item
	State     State

	// GoalComplete means every concept in scope is mastered; Item is
	// zero in that case.
	GoalComplete bool

	// Degraded means generation failed or timed out and the item came
	// from the local bank instead.
	Degraded bool
}

// Response is one answered item as reported by the UI boundary.
type Response struct {
	Correct      bool
	ChosenOption string
	HintsUsed    int
	Duration     time.Duration
}

// Outcome describes the effects of one recorded response.
type Outcome struct {
	ConceptID string
	ItemID    string
	Correct   bool

	// Update is the applied mastery change for the answered concept.
	Update mastery.Update

	// PrereqDecays are the failure-propagation updates applied to direct
	// prerequisites on a wrong answer.
	PrereqDecays []mastery.Update

	// State after the response: SelectingConcept mid-quiz, Finished when
	// the quiz counter was reached.
	State State

	// Decision is set when the quiz finished, feeding the
	// retry/review/advance gate.
	Decision *DecisionContext

	// PersistenceErr reports a lost write; the in-memory estimates
	// remain authoritative.
	PersistenceErr error
}

// DecisionContext is the post-quiz suggestion set.
type DecisionContext struct {
	ConceptID string

	// Accuracy over the quiz just finished, in [0,1].
	Accuracy float64

	// WeakPrerequisites are direct prerequisites below WeakThreshold,
	// candidates for the review path.
	WeakPrerequisites []string

	// ReadySuccessors are dependents whose prerequisites are all at or
	// above ReadyThreshold, candidates for the advance path.
	ReadySuccessors []string
}

// Decision is the student's choice at the post-quiz gate.
type Decision int

const (
	// DecideRetry repeats a quiz on the same concept.
	DecideRetry Decision = iota
	// DecideReview switches to a weak prerequisite (or a named topic).
	DecideReview
	// DecideAdvance moves to a ready successor (or a named topic).
	DecideAdvance
)

func (d Decision) String() string {
	switch d {
	case DecideRetry:
		return "retry"
	case DecideReview:
		return "review"
	case DecideAdvance:
		return "advance"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}
