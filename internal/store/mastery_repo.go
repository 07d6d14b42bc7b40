package store

import (
	"context"
	"fmt"

	"github.com/sabilabs/sabi/ent"
	"github.com/sabilabs/sabi/ent/conceptmastery"
)

func (r *repo) UpsertMastery(ctx context.Context, studentID, conceptID string, probability float64, observed bool) error {
	existing, err := r.client.ConceptMastery.Query().
		Where(
			conceptmastery.StudentID(studentID),
			conceptmastery.ConceptID(conceptID),
		).
		Only(ctx)
	if err != nil && !ent.IsNotFound(err) {
		return persistErr("query mastery", err)
	}

	if existing == nil {
		attempts := 0
		if observed {
			attempts = 1
		}
		_, err = r.client.ConceptMastery.Create().
			SetStudentID(studentID).
			SetConceptID(conceptID).
			SetProbability(probability).
			SetAttempts(attempts).
			Save(ctx)
		if err != nil {
			return persistErr("create mastery", err)
		}
		return nil
	}

	builder := existing.Update().SetProbability(probability)
	if observed {
		builder = builder.SetAttempts(existing.Attempts + 1)
	}
	if _, err := builder.Save(ctx); err != nil {
		return persistErr("update mastery", err)
	}
	return nil
}

func (r *repo) MasteryForStudent(ctx context.Context, studentID string) ([]MasteryRow, error) {
	rows, err := r.client.ConceptMastery.Query().
		Where(conceptmastery.StudentID(studentID)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query mastery for student: %w", err)
	}

	out := make([]MasteryRow, 0, len(rows))
	for _, m := range rows {
		out = append(out, MasteryRow{
			StudentID:   m.StudentID,
			ConceptID:   m.ConceptID,
			Probability: m.Probability,
			Attempts:    m.Attempts,
			UpdatedAt:   m.UpdatedAt,
		})
	}
	return out, nil
}
