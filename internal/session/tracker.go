// Package session does the bookkeeping around one practice session: the
// persisted session record, the response archive, and the end-of-session
// summary. The in-memory state is authoritative; persistence failures
// are reported but never block the session.
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sabilabs/sabi/internal/mastery"
	"github.com/sabilabs/sabi/internal/store"
)

// ErrNoSession is returned when there is no session to resume.
var ErrNoSession = errors.New("no resumable session")

// Archive is the slice of the store the tracker writes through to.
type Archive interface {
	CreateSession(ctx context.Context, row store.SessionRow) error
	SetSessionStatus(ctx context.Context, sessionID, status string) error
	UpdateSessionScope(ctx context.Context, sessionID, subject, grade, topic string) error
	LatestSession(ctx context.Context, studentID string, statuses ...string) (*store.SessionRow, error)
	GetSession(ctx context.Context, sessionID string) (*store.SessionRow, error)
	ResponsesBySession(ctx context.Context, sessionID string) ([]store.ResponseRow, error)
	AppendResponse(ctx context.Context, row store.ResponseRow) (int64, error)
}

// Answer is one response as the tracker archives it.
type Answer struct {
	ConceptID    string
	ItemID       string
	Correct      bool
	ChosenOption string
	Difficulty   string
	HintsUsed    int
	Duration     time.Duration
}

// Tracker follows one session from start to end. Safe for concurrent use.
type Tracker struct {
	archive Archive

	mu      sync.Mutex
	row     store.SessionRow
	answers []Answer
	// first and last bound the mastery delta per concept over the session.
	first map[string]float64
	last  map[string]float64
}

// Start creates a new active session. The returned error, if any, is a
// *store.PersistenceError; the tracker is usable either way.
func Start(ctx context.Context, archive Archive, studentID, goal, subject, grade string) (*Tracker, error) {
	t := &Tracker{
		archive: archive,
		row: store.SessionRow{
			SessionID: uuid.NewString(),
			StudentID: studentID,
			Goal:      goal,
			Subject:   subject,
			Grade:     grade,
			Status:    store.SessionActive,
			StartedAt: time.Now().UTC(),
		},
		first: make(map[string]float64),
		last:  make(map[string]float64),
	}
	err := archive.CreateSession(ctx, t.row)
	return t, err
}

// ResumeLatest reopens the student's most recent active or paused
// session. Returns ErrNoSession when there is nothing to resume.
func ResumeLatest(ctx context.Context, archive Archive, studentID string) (*Tracker, error) {
	row, err := archive.LatestSession(ctx, studentID, store.SessionActive, store.SessionPaused)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNoSession
	}
	return reopen(ctx, archive, *row)
}

// Resume reopens a specific session by ID. Finished or unknown sessions
// return ErrNoSession.
func Resume(ctx context.Context, archive Archive, sessionID string) (*Tracker, error) {
	row, err := archive.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if row == nil || row.Status == store.SessionFinished {
		return nil, ErrNoSession
	}
	return reopen(ctx, archive, *row)
}

// reopen rebuilds the tracker's answer log from the archive so the
// summary covers the whole session, not just the part since the restart.
// Mastery deltas restart from the reopen point; only probabilities are
// persisted, not per-update before/after pairs.
func reopen(ctx context.Context, archive Archive, row store.SessionRow) (*Tracker, error) {
	t := &Tracker{
		archive: archive,
		row:     row,
		first:   make(map[string]float64),
		last:    make(map[string]float64),
	}

	rows, err := archive.ResponsesBySession(ctx, row.SessionID)
	if err != nil {
		return t, err
	}
	for _, r := range rows {
		t.answers = append(t.answers, Answer{
			ConceptID:    r.ConceptID,
			ItemID:       r.ItemID,
			Correct:      r.Correct,
			ChosenOption: r.ChosenOption,
			Difficulty:   r.Difficulty,
			HintsUsed:    r.HintsUsed,
			Duration:     time.Duration(r.TimeMS) * time.Millisecond,
		})
	}

	if row.Status != store.SessionActive {
		t.row.Status = store.SessionActive
		if err := archive.SetSessionStatus(ctx, row.SessionID, store.SessionActive); err != nil {
			return t, err
		}
	}
	return t, nil
}

// ID returns the session identifier.
func (t *Tracker) ID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.row.SessionID
}

// Status returns the current session status.
func (t *Tracker) Status() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.row.Status
}

// SetScope records the subject, grade, and topic the session settled on.
func (t *Tracker) SetScope(ctx context.Context, subject, grade, topic string) error {
	t.mu.Lock()
	t.row.Subject = subject
	t.row.Grade = grade
	t.row.Topic = topic
	id := t.row.SessionID
	t.mu.Unlock()

	return t.archive.UpdateSessionScope(ctx, id, subject, grade, topic)
}

// Pause marks the session paused so it can be resumed later.
func (t *Tracker) Pause(ctx context.Context) error {
	return t.setStatus(ctx, store.SessionPaused)
}

// Resume marks a paused session active again.
func (t *Tracker) Resume(ctx context.Context) error {
	return t.setStatus(ctx, store.SessionActive)
}

// End finishes the session.
func (t *Tracker) End(ctx context.Context) error {
	t.mu.Lock()
	now := time.Now().UTC()
	t.row.EndedAt = &now
	t.mu.Unlock()
	return t.setStatus(ctx, store.SessionFinished)
}

func (t *Tracker) setStatus(ctx context.Context, status string) error {
	t.mu.Lock()
	t.row.Status = status
	id := t.row.SessionID
	t.mu.Unlock()

	return t.archive.SetSessionStatus(ctx, id, status)
}

// Record archives one answer and folds the mastery updates into the
// session's delta accounting. Decay updates for prerequisites belong
// here too so the summary shows what the failure cost.
func (t *Tracker) Record(ctx context.Context, ans Answer, updates ...mastery.Update) error {
	t.mu.Lock()
	t.answers = append(t.answers, ans)
	for _, u := range updates {
		if _, ok := t.first[u.ConceptID]; !ok {
			t.first[u.ConceptID] = u.Before
		}
		t.last[u.ConceptID] = u.After
	}
	row := store.ResponseRow{
		SessionID:    t.row.SessionID,
		StudentID:    t.row.StudentID,
		ConceptID:    ans.ConceptID,
		ItemID:       ans.ItemID,
		Correct:      ans.Correct,
		ChosenOption: ans.ChosenOption,
		Difficulty:   ans.Difficulty,
		HintsUsed:    ans.HintsUsed,
		TimeMS:       int(ans.Duration.Milliseconds()),
	}
	t.mu.Unlock()

	if _, err := t.archive.AppendResponse(ctx, row); err != nil {
		return fmt.Errorf("archive response: %w", err)
	}
	return nil
}

// MasteryDelta is the net change for one concept over the session.
type MasteryDelta struct {
	ConceptID string
	Before    float64
	After     float64
}

// Summary is the end-of-session report.
type Summary struct {
	SessionID string
	Answered  int
	Correct   int

	// Accuracy in [0,1]; zero when nothing was answered.
	Accuracy float64

	// AvgTime is the mean time per answer.
	AvgTime time.Duration

	// ConceptsCovered lists practiced concepts in first-touch order.
	ConceptsCovered []string

	// MasteryDeltas holds the net mastery change per touched concept,
	// including prerequisites hit by failure propagation.
	MasteryDeltas []MasteryDelta
}

// Summary computes the report for the session so far.
func (t *Tracker) Summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Summary{SessionID: t.row.SessionID, Answered: len(t.answers)}

	var total time.Duration
	var covered []string
	seen := make(map[string]bool)
	for _, a := range t.answers {
		if a.Correct {
			s.Correct++
		}
		total += a.Duration
		if !seen[a.ConceptID] {
			seen[a.ConceptID] = true
			covered = append(covered, a.ConceptID)
		}
	}
	if s.Answered > 0 {
		s.Accuracy = float64(s.Correct) / float64(s.Answered)
		s.AvgTime = total / time.Duration(s.Answered)
	}
	s.ConceptsCovered = covered

	// Practiced concepts first, then prerequisites touched only by decay.
	for _, id := range covered {
		if _, ok := t.first[id]; ok {
			s.MasteryDeltas = append(s.MasteryDeltas, MasteryDelta{ConceptID: id, Before: t.first[id], After: t.last[id]})
		}
	}
	var decayed []string
	for id := range t.first {
		if !seen[id] {
			decayed = append(decayed, id)
		}
	}
	sort.Strings(decayed)
	for _, id := range decayed {
		s.MasteryDeltas = append(s.MasteryDeltas, MasteryDelta{ConceptID: id, Before: t.first[id], After: t.last[id]})
	}
	return s
}
