package store

import (
	"context"
	"fmt"

	"github.com/sabilabs/sabi/ent"
	"github.com/sabilabs/sabi/ent/responseevent"
)

func (r *repo) AppendResponse(ctx context.Context, row ResponseRow) (int64, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, persistErr("next sequence", err)
	}

	_, err = r.client.ResponseEvent.Create().
		SetSequence(seqNum).
		SetSessionID(row.SessionID).
		SetStudentID(row.StudentID).
		SetConceptID(row.ConceptID).
		SetItemID(row.ItemID).
		SetCorrect(row.Correct).
		SetChosenOption(row.ChosenOption).
		SetDifficulty(row.Difficulty).
		SetHintsUsed(row.HintsUsed).
		SetTimeMs(row.TimeMS).
		Save(ctx)
	if err != nil {
		return 0, persistErr("save response event", err)
	}
	return seqNum, nil
}

func (r *repo) ResponsesBySession(ctx context.Context, sessionID string) ([]ResponseRow, error) {
	events, err := r.client.ResponseEvent.Query().
		Where(responseevent.SessionID(sessionID)).
		Order(ent.Asc(responseevent.FieldSequence)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query session responses: %w", err)
	}
	return responseRowsFrom(events), nil
}

func (r *repo) RecentResponsesByConcept(ctx context.Context, studentID, conceptID string, limit int) ([]ResponseRow, error) {
	events, err := r.client.ResponseEvent.Query().
		Where(
			responseevent.StudentID(studentID),
			responseevent.ConceptID(conceptID),
		).
		Order(ent.Desc(responseevent.FieldSequence)).
		Limit(limit).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query recent responses: %w", err)
	}
	return responseRowsFrom(events), nil
}

func (r *repo) AccuracyByConcept(ctx context.Context, studentID string) ([]ConceptAccuracy, error) {
	events, err := r.client.ResponseEvent.Query().
		Where(responseevent.StudentID(studentID)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query responses for accuracy: %w", err)
	}

	byConcept := make(map[string]*ConceptAccuracy)
	order := make([]string, 0)
	for _, e := range events {
		acc, ok := byConcept[e.ConceptID]
		if !ok {
			acc = &ConceptAccuracy{ConceptID: e.ConceptID}
			byConcept[e.ConceptID] = acc
			order = append(order, e.ConceptID)
		}
		acc.Total++
		if e.Correct {
			acc.Correct++
		}
	}

	out := make([]ConceptAccuracy, 0, len(order))
	for _, id := range order {
		out = append(out, *byConcept[id])
	}
	return out, nil
}

func responseRowsFrom(events []*ent.ResponseEvent) []ResponseRow {
	out := make([]ResponseRow, 0, len(events))
	for _, e := range events {
		out = append(out, ResponseRow{
			Sequence:     e.Sequence,
			Timestamp:    e.Timestamp,
			SessionID:    e.SessionID,
			StudentID:    e.StudentID,
			ConceptID:    e.ConceptID,
			ItemID:       e.ItemID,
			Correct:      e.Correct,
			ChosenOption: e.ChosenOption,
			Difficulty:   e.Difficulty,
			HintsUsed:    e.HintsUsed,
			TimeMS:       e.TimeMs,
		})
	}
	return out
}
