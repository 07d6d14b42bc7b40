package store

import (
	"context"
	"time"
)

// MasteryRow is the persisted mastery estimate for one (student, concept) pair.
type MasteryRow struct {
	StudentID   string
	ConceptID   string
	Probability float64
	Attempts    int
	UpdatedAt   time.Time
}

// SessionRow mirrors one SessionRecord.
type SessionRow struct {
	SessionID string
	StudentID string
	Goal      string
	Subject   string
	Grade     string
	Topic     string
	Status    string
	StartedAt time.Time
	EndedAt   *time.Time
}

// ResponseRow mirrors one persisted ResponseEvent.
type ResponseRow struct {
	Sequence     int64
	Timestamp    time.Time
	SessionID    string
	StudentID    string
	ConceptID    string
	ItemID       string
	Correct      bool
	ChosenOption string
	Difficulty   string
	HintsUsed    int
	TimeMS       int
}

// LLMRequestEventData captures one LLM API call for the request log.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMS    int64
	Success      bool
	ErrorMessage string
}

// ConceptAccuracy aggregates correctness for one concept.
type ConceptAccuracy struct {
	ConceptID string
	Total     int
	Correct   int
}

// Session status values.
const (
	SessionActive   = "active"
	SessionPaused   = "paused"
	SessionFinished = "finished"
)

// Repo is the unified persistence interface. All write methods wrap
// failures in *PersistenceError so callers can distinguish a lost write
// from a logic error.
type Repo interface {
	// EnsureUser registers the student if not already present.
	EnsureUser(ctx context.Context, studentID, name string) error

	// UpsertMastery writes the latest probability for (student, concept),
	// incrementing the attempt counter when observed is true.
	UpsertMastery(ctx context.Context, studentID, conceptID string, probability float64, observed bool) error

	// MasteryForStudent loads all persisted estimates for one student.
	MasteryForStudent(ctx context.Context, studentID string) ([]MasteryRow, error)

	// CreateSession records a new active session.
	CreateSession(ctx context.Context, row SessionRow) error

	// SetSessionStatus transitions a session and stamps ended_at when the
	// new status is finished.
	SetSessionStatus(ctx context.Context, sessionID, status string) error

	// UpdateSessionScope records the subject/grade/topic the session
	// settled on after topic selection.
	UpdateSessionScope(ctx context.Context, sessionID, subject, grade, topic string) error

	// LatestSession returns the most recently started session for the
	// student with one of the given statuses, or nil if none exists.
	LatestSession(ctx context.Context, studentID string, statuses ...string) (*SessionRow, error)

	// GetSession loads one session by its ID, or nil if absent.
	GetSession(ctx context.Context, sessionID string) (*SessionRow, error)

	// AppendResponse persists one answered question, assigning the next
	// global sequence number. Returns the assigned sequence.
	AppendResponse(ctx context.Context, row ResponseRow) (int64, error)

	// ResponsesBySession returns the session's responses in sequence order.
	ResponsesBySession(ctx context.Context, sessionID string) ([]ResponseRow, error)

	// RecentResponsesByConcept returns the student's most recent responses
	// for a concept, newest first, at most limit rows.
	RecentResponsesByConcept(ctx context.Context, studentID, conceptID string, limit int) ([]ResponseRow, error)

	// AccuracyByConcept aggregates correct/total per concept for a student.
	AccuracyByConcept(ctx context.Context, studentID string) ([]ConceptAccuracy, error)

	// AppendLLMRequest logs one LLM API call.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}
