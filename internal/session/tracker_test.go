package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sabilabs/sabi/internal/mastery"
	"github.com/sabilabs/sabi/internal/store"
)

type stubArchive struct {
	sessions  []store.SessionRow
	statuses  map[string]string
	scopes    map[string][3]string
	responses []store.ResponseRow
	latest    *store.SessionRow
	failWith  error
	seq       int64
}

func newStubArchive() *stubArchive {
	return &stubArchive{
		statuses: make(map[string]string),
		scopes:   make(map[string][3]string),
	}
}

func (a *stubArchive) CreateSession(_ context.Context, row store.SessionRow) error {
	if a.failWith != nil {
		return a.failWith
	}
	a.sessions = append(a.sessions, row)
	a.statuses[row.SessionID] = row.Status
	return nil
}

func (a *stubArchive) SetSessionStatus(_ context.Context, sessionID, status string) error {
	if a.failWith != nil {
		return a.failWith
	}
	a.statuses[sessionID] = status
	return nil
}

func (a *stubArchive) UpdateSessionScope(_ context.Context, sessionID, subject, grade, topic string) error {
	if a.failWith != nil {
		return a.failWith
	}
	a.scopes[sessionID] = [3]string{subject, grade, topic}
	return nil
}

func (a *stubArchive) LatestSession(_ context.Context, _ string, _ ...string) (*store.SessionRow, error) {
	return a.latest, nil
}

func (a *stubArchive) GetSession(_ context.Context, sessionID string) (*store.SessionRow, error) {
	for i := range a.sessions {
		if a.sessions[i].SessionID == sessionID {
			row := a.sessions[i]
			row.Status = a.statuses[sessionID]
			return &row, nil
		}
	}
	if a.latest != nil && a.latest.SessionID == sessionID {
		return a.latest, nil
	}
	return nil, nil
}

func (a *stubArchive) ResponsesBySession(_ context.Context, sessionID string) ([]store.ResponseRow, error) {
	var rows []store.ResponseRow
	for _, r := range a.responses {
		if r.SessionID == sessionID {
			rows = append(rows, r)
		}
	}
	return rows, nil
}

func (a *stubArchive) AppendResponse(_ context.Context, row store.ResponseRow) (int64, error) {
	if a.failWith != nil {
		return 0, a.failWith
	}
	a.seq++
	row.Sequence = a.seq
	a.responses = append(a.responses, row)
	return a.seq, nil
}

func TestStartCreatesActiveSession(t *testing.T) {
	a := newStubArchive()
	tr, err := Start(context.Background(), a, "s1", "práctica", "Aritmética", "1ro de secundaria")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if tr.ID() == "" {
		t.Error("empty session id")
	}
	if tr.Status() != store.SessionActive {
		t.Errorf("status = %q", tr.Status())
	}
	if len(a.sessions) != 1 || a.sessions[0].StudentID != "s1" {
		t.Errorf("persisted sessions = %+v", a.sessions)
	}
}

func TestStartSurvivesPersistenceFailure(t *testing.T) {
	a := newStubArchive()
	a.failWith = &store.PersistenceError{Op: "create session", Err: errors.New("locked")}

	tr, err := Start(context.Background(), a, "s1", "práctica", "", "")
	if err == nil {
		t.Fatal("expected persistence error")
	}
	if tr == nil || tr.ID() == "" {
		t.Fatal("tracker must be usable despite the lost write")
	}
}

func TestResumeLatest(t *testing.T) {
	a := newStubArchive()
	a.latest = &store.SessionRow{
		SessionID: "sess-1",
		StudentID: "s1",
		Status:    store.SessionPaused,
		StartedAt: time.Now().Add(-time.Hour),
	}

	tr, err := ResumeLatest(context.Background(), a, "s1")
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if tr.ID() != "sess-1" {
		t.Errorf("id = %q", tr.ID())
	}
	if tr.Status() != store.SessionActive {
		t.Errorf("status = %q, want active", tr.Status())
	}
	if a.statuses["sess-1"] != store.SessionActive {
		t.Error("resumed status not persisted")
	}
}

func TestResumeLatestNoSession(t *testing.T) {
	a := newStubArchive()
	if _, err := ResumeLatest(context.Background(), a, "s1"); !errors.Is(err, ErrNoSession) {
		t.Errorf("err = %v, want ErrNoSession", err)
	}
}

func TestResumeLatestRehydratesAnswers(t *testing.T) {
	a := newStubArchive()
	a.latest = &store.SessionRow{
		SessionID: "sess-1",
		StudentID: "s1",
		Status:    store.SessionPaused,
		StartedAt: time.Now().Add(-time.Hour),
	}
	a.responses = []store.ResponseRow{
		{SessionID: "sess-1", StudentID: "s1", ConceptID: "b", ItemID: "i1", Correct: true, TimeMS: 10000},
		{SessionID: "sess-1", StudentID: "s1", ConceptID: "b", ItemID: "i2", Correct: false, TimeMS: 20000},
		{SessionID: "otra", StudentID: "s1", ConceptID: "c", ItemID: "i3", Correct: true, TimeMS: 5000},
	}

	tr, err := ResumeLatest(context.Background(), a, "s1")
	if err != nil {
		t.Fatalf("resume: %v", err)
	}

	// The summary covers the whole session, not just since the restart.
	s := tr.Summary()
	if s.Answered != 2 || s.Correct != 1 {
		t.Errorf("answered/correct = %d/%d, want 2/1", s.Answered, s.Correct)
	}
	if s.AvgTime != 15*time.Second {
		t.Errorf("avg time = %v", s.AvgTime)
	}
	if len(s.ConceptsCovered) != 1 || s.ConceptsCovered[0] != "b" {
		t.Errorf("covered = %v", s.ConceptsCovered)
	}
}

func TestResumeByID(t *testing.T) {
	a := newStubArchive()
	tr, _ := Start(context.Background(), a, "s1", "práctica", "", "")
	if err := tr.Record(context.Background(), Answer{ConceptID: "b", ItemID: "i1", Correct: true, Duration: 8 * time.Second}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := tr.Pause(context.Background()); err != nil {
		t.Fatalf("pause: %v", err)
	}

	got, err := Resume(context.Background(), a, tr.ID())
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if got.ID() != tr.ID() {
		t.Errorf("id = %q, want %q", got.ID(), tr.ID())
	}
	if got.Status() != store.SessionActive {
		t.Errorf("status = %q, want active", got.Status())
	}
	if s := got.Summary(); s.Answered != 1 || s.Correct != 1 {
		t.Errorf("rehydrated summary = %+v", s)
	}
}

func TestResumeByIDNotResumable(t *testing.T) {
	a := newStubArchive()
	tr, _ := Start(context.Background(), a, "s1", "práctica", "", "")
	if err := tr.End(context.Background()); err != nil {
		t.Fatalf("end: %v", err)
	}

	if _, err := Resume(context.Background(), a, tr.ID()); !errors.Is(err, ErrNoSession) {
		t.Errorf("finished session: err = %v, want ErrNoSession", err)
	}
	if _, err := Resume(context.Background(), a, "no-such"); !errors.Is(err, ErrNoSession) {
		t.Errorf("unknown session: err = %v, want ErrNoSession", err)
	}
}

func TestPauseEndPersistStatus(t *testing.T) {
	a := newStubArchive()
	tr, _ := Start(context.Background(), a, "s1", "práctica", "", "")

	if err := tr.Pause(context.Background()); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if a.statuses[tr.ID()] != store.SessionPaused {
		t.Errorf("persisted status = %q", a.statuses[tr.ID()])
	}

	if err := tr.End(context.Background()); err != nil {
		t.Fatalf("end: %v", err)
	}
	if tr.Status() != store.SessionFinished {
		t.Errorf("status = %q", tr.Status())
	}
}

func TestRecordArchivesResponse(t *testing.T) {
	a := newStubArchive()
	tr, _ := Start(context.Background(), a, "s1", "práctica", "", "")

	err := tr.Record(context.Background(), Answer{
		ConceptID:    "1_ARIT_03",
		ItemID:       "i1",
		Correct:      true,
		ChosenOption: "3/4",
		Difficulty:   "easy",
		HintsUsed:    1,
		Duration:     12 * time.Second,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	if len(a.responses) != 1 {
		t.Fatalf("responses = %d", len(a.responses))
	}
	row := a.responses[0]
	if row.SessionID != tr.ID() || row.StudentID != "s1" {
		t.Errorf("row = %+v", row)
	}
	if row.TimeMS != 12000 {
		t.Errorf("time_ms = %d", row.TimeMS)
	}
}

func TestSummary(t *testing.T) {
	a := newStubArchive()
	tr, _ := Start(context.Background(), a, "s1", "práctica", "", "")

	ctx := context.Background()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	must(tr.Record(ctx, Answer{ConceptID: "b", Correct: true, Duration: 10 * time.Second},
		mastery.Update{ConceptID: "b", Before: 0.50, After: 0.69}))
	must(tr.Record(ctx, Answer{ConceptID: "b", Correct: false, Duration: 20 * time.Second},
		mastery.Update{ConceptID: "b", Before: 0.69, After: 0.55},
		mastery.Update{ConceptID: "a", Before: 0.80, After: 0.68}))
	must(tr.Record(ctx, Answer{ConceptID: "c", Correct: true, Duration: 30 * time.Second},
		mastery.Update{ConceptID: "c", Before: 0.30, After: 0.52}))

	s := tr.Summary()
	if s.Answered != 3 || s.Correct != 2 {
		t.Errorf("answered/correct = %d/%d", s.Answered, s.Correct)
	}
	if s.Accuracy < 0.66 || s.Accuracy > 0.67 {
		t.Errorf("accuracy = %v", s.Accuracy)
	}
	if s.AvgTime != 20*time.Second {
		t.Errorf("avg time = %v", s.AvgTime)
	}
	if len(s.ConceptsCovered) != 2 || s.ConceptsCovered[0] != "b" || s.ConceptsCovered[1] != "c" {
		t.Errorf("covered = %v", s.ConceptsCovered)
	}

	// Deltas: practiced concepts in order, then decay-only prerequisites.
	if len(s.MasteryDeltas) != 3 {
		t.Fatalf("deltas = %+v", s.MasteryDeltas)
	}
	if s.MasteryDeltas[0].ConceptID != "b" || s.MasteryDeltas[0].Before != 0.50 || s.MasteryDeltas[0].After != 0.55 {
		t.Errorf("delta b = %+v", s.MasteryDeltas[0])
	}
	if s.MasteryDeltas[2].ConceptID != "a" || s.MasteryDeltas[2].After != 0.68 {
		t.Errorf("delta a = %+v", s.MasteryDeltas[2])
	}
}

func TestSummaryEmpty(t *testing.T) {
	a := newStubArchive()
	tr, _ := Start(context.Background(), a, "s1", "práctica", "", "")

	s := tr.Summary()
	if s.Answered != 0 || s.Accuracy != 0 || s.AvgTime != 0 {
		t.Errorf("summary = %+v", s)
	}
}

func TestSetScope(t *testing.T) {
	a := newStubArchive()
	tr, _ := Start(context.Background(), a, "s1", "práctica", "", "")

	if err := tr.SetScope(context.Background(), "Álgebra", "2do de secundaria", "ecuaciones"); err != nil {
		t.Fatalf("set scope: %v", err)
	}
	got := a.scopes[tr.ID()]
	if got != [3]string{"Álgebra", "2do de secundaria", "ecuaciones"} {
		t.Errorf("scope = %v", got)
	}
}
