package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ConceptMastery holds the latest mastery estimate for one (student, concept)
// pair. Only the BKT update path writes probability; attempts is a monotone
// counter.
type ConceptMastery struct {
	ent.Schema
}

func (ConceptMastery) Fields() []ent.Field {
	return []ent.Field{
		field.String("student_id").NotEmpty(),
		field.String("concept_id").NotEmpty(),
		field.Float("probability").
			Comment("Estimated mastery probability in [0,1]"),
		field.Int("attempts").
			Default(0).
			Comment("Number of recorded observations"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

func (ConceptMastery) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("student_id", "concept_id").Unique(),
		index.Fields("student_id"),
	}
}
