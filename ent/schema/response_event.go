package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ResponseEvent records a single answered question. Append-only; consumed
// once by the BKT update and kept for session summaries and analytics.
type ResponseEvent struct {
	ent.Schema
}

func (ResponseEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (ResponseEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionRecord"),
		field.String("student_id").NotEmpty(),
		field.String("concept_id").NotEmpty(),
		field.String("item_id").NotEmpty(),
		field.Bool("correct"),
		field.String("chosen_option").
			Default("").
			Comment("The option text the student picked"),
		field.String("difficulty").
			NotEmpty().
			Comment("easy, medium, or hard"),
		field.Int("hints_used").Default(0),
		field.Int("time_ms").
			Comment("Milliseconds from item display to answer"),
	}
}

func (ResponseEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("student_id", "concept_id"),
		index.Fields("session_id"),
	}
}
