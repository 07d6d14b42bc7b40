package store

import (
	"context"
	"fmt"
	"time"

	"github.com/sabilabs/sabi/ent"
	"github.com/sabilabs/sabi/ent/predicate"
	"github.com/sabilabs/sabi/ent/sessionrecord"
)

func (r *repo) CreateSession(ctx context.Context, row SessionRow) error {
	builder := r.client.SessionRecord.Create().
		SetSessionID(row.SessionID).
		SetStudentID(row.StudentID).
		SetGoal(row.Goal).
		SetSubject(row.Subject).
		SetGrade(row.Grade).
		SetTopic(row.Topic).
		SetStatus(SessionActive)

	if !row.StartedAt.IsZero() {
		builder = builder.SetStartedAt(row.StartedAt)
	}

	if _, err := builder.Save(ctx); err != nil {
		return persistErr("create session", err)
	}
	return nil
}

func (r *repo) SetSessionStatus(ctx context.Context, sessionID, status string) error {
	builder := r.client.SessionRecord.Update().
		Where(sessionrecord.SessionID(sessionID)).
		SetStatus(status)

	if status == SessionFinished {
		builder = builder.SetEndedAt(time.Now())
	}

	n, err := builder.Save(ctx)
	if err != nil {
		return persistErr("set session status", err)
	}
	if n == 0 {
		return persistErr("set session status", fmt.Errorf("session %s not found", sessionID))
	}
	return nil
}

func (r *repo) UpdateSessionScope(ctx context.Context, sessionID, subject, grade, topic string) error {
	n, err := r.client.SessionRecord.Update().
		Where(sessionrecord.SessionID(sessionID)).
		SetSubject(subject).
		SetGrade(grade).
		SetTopic(topic).
		Save(ctx)
	if err != nil {
		return persistErr("update session scope", err)
	}
	if n == 0 {
		return persistErr("update session scope", fmt.Errorf("session %s not found", sessionID))
	}
	return nil
}

func (r *repo) LatestSession(ctx context.Context, studentID string, statuses ...string) (*SessionRow, error) {
	preds := []predicate.SessionRecord{sessionrecord.StudentID(studentID)}
	if len(statuses) > 0 {
		preds = append(preds, sessionrecord.StatusIn(statuses...))
	}

	rec, err := r.client.SessionRecord.Query().
		Where(preds...).
		Order(ent.Desc(sessionrecord.FieldStartedAt)).
		First(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest session: %w", err)
	}
	return sessionRowFrom(rec), nil
}

func (r *repo) GetSession(ctx context.Context, sessionID string) (*SessionRow, error) {
	rec, err := r.client.SessionRecord.Query().
		Where(sessionrecord.SessionID(sessionID)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("query session: %w", err)
	}
	return sessionRowFrom(rec), nil
}

func sessionRowFrom(rec *ent.SessionRecord) *SessionRow {
	return &SessionRow{
		SessionID: rec.SessionID,
		StudentID: rec.StudentID,
		Goal:      rec.Goal,
		Subject:   rec.Subject,
		Grade:     rec.Grade,
		Topic:     rec.Topic,
		Status:    rec.Status,
		StartedAt: rec.StartedAt,
		EndedAt:   rec.EndedAt,
	}
}
