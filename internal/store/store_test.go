package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is only meaningful with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestEnsureUserIdempotent(t *testing.T) {
	s := openTestStore(t)
	r := s.Repo()
	ctx := context.Background()

	if err := r.EnsureUser(ctx, "user-test-1", "Ana"); err != nil {
		t.Fatalf("ensure user: %v", err)
	}
	if err := r.EnsureUser(ctx, "user-test-1", "Ana"); err != nil {
		t.Fatalf("ensure user (repeat): %v", err)
	}

	count, err := s.Client().User.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count < 1 {
		t.Errorf("user count = %d, want at least 1", count)
	}
}

func TestUpsertMastery(t *testing.T) {
	s := openTestStore(t)
	r := s.Repo()
	ctx := context.Background()

	const student = "mastery-test-student"

	// First write creates the row with one attempt.
	if err := r.UpsertMastery(ctx, student, "c1", 0.3, true); err != nil {
		t.Fatalf("upsert (create): %v", err)
	}

	// Second write updates probability and increments attempts.
	if err := r.UpsertMastery(ctx, student, "c1", 0.69, true); err != nil {
		t.Fatalf("upsert (update): %v", err)
	}

	// A write with observed=false must not bump attempts.
	if err := r.UpsertMastery(ctx, student, "c1", 0.55, false); err != nil {
		t.Fatalf("upsert (decay): %v", err)
	}

	rows, err := r.MasteryForStudent(ctx, student)
	if err != nil {
		t.Fatalf("load mastery: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("mastery rows = %d, want 1", len(rows))
	}
	got := rows[0]
	if got.ConceptID != "c1" {
		t.Errorf("concept = %q, want c1", got.ConceptID)
	}
	if got.Probability != 0.55 {
		t.Errorf("probability = %v, want 0.55", got.Probability)
	}
	if got.Attempts != 2 {
		t.Errorf("attempts = %d, want 2", got.Attempts)
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := openTestStore(t)
	r := s.Repo()
	ctx := context.Background()

	const student = "session-test-student"

	err := r.CreateSession(ctx, SessionRow{
		SessionID: "sess-1",
		StudentID: student,
		Goal:      "review",
	})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	got, err := r.GetSession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got == nil {
		t.Fatal("expected session, got nil")
	}
	if got.Status != SessionActive {
		t.Errorf("status = %q, want %q", got.Status, SessionActive)
	}
	if got.EndedAt != nil {
		t.Error("expected nil ended_at on active session")
	}

	if err := r.UpdateSessionScope(ctx, "sess-1", "Álgebra", "3ro de secundaria", "polinomios"); err != nil {
		t.Fatalf("update scope: %v", err)
	}

	if err := r.SetSessionStatus(ctx, "sess-1", SessionPaused); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if err := r.SetSessionStatus(ctx, "sess-1", SessionFinished); err != nil {
		t.Fatalf("finish: %v", err)
	}

	got, err = r.GetSession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get session (finished): %v", err)
	}
	if got.Status != SessionFinished {
		t.Errorf("status = %q, want %q", got.Status, SessionFinished)
	}
	if got.EndedAt == nil {
		t.Error("expected ended_at on finished session")
	}
	if got.Subject != "Álgebra" || got.Topic != "polinomios" {
		t.Errorf("scope not persisted: subject=%q topic=%q", got.Subject, got.Topic)
	}
}

func TestSetStatusUnknownSessionFails(t *testing.T) {
	s := openTestStore(t)
	r := s.Repo()

	err := r.SetSessionStatus(context.Background(), "no-such-session", SessionPaused)
	if err == nil {
		t.Fatal("expected error for unknown session")
	}
	var pe *PersistenceError
	if !errors.As(err, &pe) {
		t.Errorf("error type = %T, want *PersistenceError", err)
	}
}

func TestLatestSessionFiltersByStatus(t *testing.T) {
	s := openTestStore(t)
	r := s.Repo()
	ctx := context.Background()

	const student = "latest-test-student"
	base := time.Now().UTC().Add(-time.Hour)

	sessions := []struct {
		id     string
		status string
		offset time.Duration
	}{
		{"latest-a", SessionFinished, 0},
		{"latest-b", SessionPaused, 10 * time.Minute},
		{"latest-c", SessionFinished, 20 * time.Minute},
	}
	for _, sd := range sessions {
		err := r.CreateSession(ctx, SessionRow{
			SessionID: sd.id,
			StudentID: student,
			Goal:      "review",
			StartedAt: base.Add(sd.offset),
		})
		if err != nil {
			t.Fatalf("create %s: %v", sd.id, err)
		}
		if sd.status != SessionActive {
			if err := r.SetSessionStatus(ctx, sd.id, sd.status); err != nil {
				t.Fatalf("set status %s: %v", sd.id, err)
			}
		}
	}

	// Unfiltered: newest by started_at.
	got, err := r.LatestSession(ctx, student)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got == nil || got.SessionID != "latest-c" {
		t.Errorf("latest = %+v, want latest-c", got)
	}

	// Only paused.
	got, err = r.LatestSession(ctx, student, SessionPaused)
	if err != nil {
		t.Fatalf("latest paused: %v", err)
	}
	if got == nil || got.SessionID != "latest-b" {
		t.Errorf("latest paused = %+v, want latest-b", got)
	}

	// No match for a student with no sessions.
	got, err = r.LatestSession(ctx, "nobody-here", SessionActive)
	if err != nil {
		t.Fatalf("latest (none): %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestAppendResponseAssignsSequence(t *testing.T) {
	s := openTestStore(t)
	r := s.Repo()
	ctx := context.Background()

	const student = "response-test-student"

	row := ResponseRow{
		SessionID:  "resp-sess",
		StudentID:  student,
		ConceptID:  "c1",
		ItemID:     "item-1",
		Correct:    true,
		Difficulty: "medium",
		TimeMS:     4200,
	}

	seq1, err := r.AppendResponse(ctx, row)
	if err != nil {
		t.Fatalf("append 1: %v", err)
	}
	row.ItemID = "item-2"
	row.Correct = false
	seq2, err := r.AppendResponse(ctx, row)
	if err != nil {
		t.Fatalf("append 2: %v", err)
	}
	if seq2 <= seq1 {
		t.Errorf("sequence not increasing: %d then %d", seq1, seq2)
	}

	got, err := r.ResponsesBySession(ctx, "resp-sess")
	if err != nil {
		t.Fatalf("by session: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("responses = %d, want 2", len(got))
	}
	if got[0].ItemID != "item-1" || got[1].ItemID != "item-2" {
		t.Errorf("order wrong: %q, %q", got[0].ItemID, got[1].ItemID)
	}
}

func TestRecentResponsesByConcept(t *testing.T) {
	s := openTestStore(t)
	r := s.Repo()
	ctx := context.Background()

	const student = "recent-test-student"
	for i := 0; i < 5; i++ {
		_, err := r.AppendResponse(ctx, ResponseRow{
			SessionID:  "recent-sess",
			StudentID:  student,
			ConceptID:  "c7",
			ItemID:     string(rune('a' + i)),
			Correct:    i%2 == 0,
			Difficulty: "easy",
			TimeMS:     1000,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := r.RecentResponsesByConcept(ctx, student, "c7", 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("responses = %d, want 3", len(got))
	}
	// Newest first.
	if got[0].ItemID != "e" {
		t.Errorf("newest item = %q, want e", got[0].ItemID)
	}
}

func TestAccuracyByConcept(t *testing.T) {
	s := openTestStore(t)
	r := s.Repo()
	ctx := context.Background()

	const student = "accuracy-test-student"
	answers := []struct {
		concept string
		correct bool
	}{
		{"c1", true}, {"c1", false}, {"c1", true},
		{"c2", false},
	}
	for i, a := range answers {
		_, err := r.AppendResponse(ctx, ResponseRow{
			SessionID:  "acc-sess",
			StudentID:  student,
			ConceptID:  a.concept,
			ItemID:     "i",
			Correct:    a.correct,
			Difficulty: "medium",
			TimeMS:     500,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := r.AccuracyByConcept(ctx, student)
	if err != nil {
		t.Fatalf("accuracy: %v", err)
	}
	byID := make(map[string]ConceptAccuracy, len(got))
	for _, a := range got {
		byID[a.ConceptID] = a
	}
	if a := byID["c1"]; a.Total != 3 || a.Correct != 2 {
		t.Errorf("c1 = %+v, want total 3 correct 2", a)
	}
	if a := byID["c2"]; a.Total != 1 || a.Correct != 0 {
		t.Errorf("c2 = %+v, want total 1 correct 0", a)
	}
}

func TestAppendLLMRequest(t *testing.T) {
	s := openTestStore(t)
	r := s.Repo()
	ctx := context.Background()

	err := r.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "gemini",
		Model:        "gemini-2.0-flash",
		Purpose:      "item-gen",
		InputTokens:  120,
		OutputTokens: 80,
		LatencyMS:    950,
		Success:      true,
	})
	if err != nil {
		t.Fatalf("append llm request: %v", err)
	}

	count, err := s.Client().LLMRequestEvent.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count < 1 {
		t.Errorf("llm request events = %d, want at least 1", count)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc := s.seq
	var prev int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if i > 0 && seq != prev+1 {
			t.Errorf("seq jumped from %d to %d", prev, seq)
		}
		prev = seq
	}
}

func TestPersistenceErrorUnwraps(t *testing.T) {
	inner := errors.New("disk full")
	err := persistErr("save response event", inner)

	var pe *PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("error type = %T, want *PersistenceError", err)
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to reach the inner error")
	}
	if persistErr("anything", nil) != nil {
		t.Error("nil error must stay nil")
	}
}
