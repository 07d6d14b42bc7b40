package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionRecord tracks one tutoring session from start to pause/finish.
type SessionRecord struct {
	ent.Schema
}

func (SessionRecord) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			Unique().
			NotEmpty().
			Comment("UUID grouping response events"),
		field.String("student_id").NotEmpty(),
		field.String("goal").
			NotEmpty().
			Comment("review, explore, or exam-prep"),
		field.String("subject").Default(""),
		field.String("grade").Default(""),
		field.String("topic").
			Default("").
			Comment("Free-text topic the student asked for, if any"),
		field.String("status").
			Default("active").
			Comment("active, paused, or finished"),
		field.Time("started_at").
			Default(time.Now).
			Immutable(),
		field.Time("ended_at").
			Optional().
			Nillable(),
	}
}

func (SessionRecord) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("student_id"),
		index.Fields("status"),
	}
}
