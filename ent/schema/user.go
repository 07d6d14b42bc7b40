package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// User is a registered student. The engine is multi-student capable even
// though the usual deployment is one student per process.
type User struct {
	ent.Schema
}

func (User) Fields() []ent.Field {
	return []ent.Field{
		field.String("student_id").
			Unique().
			NotEmpty().
			Comment("Stable external identifier for the student"),
		field.String("name").
			Default("").
			Comment("Display name, may equal student_id"),
		field.Time("registered_at").
			Default(time.Now).
			Immutable(),
	}
}
