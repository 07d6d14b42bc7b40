// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/sabilabs/sabi/ent/conceptmastery"
	"github.com/sabilabs/sabi/ent/llmrequestevent"
	"github.com/sabilabs/sabi/ent/responseevent"
	"github.com/sabilabs/sabi/ent/schema"
	"github.com/sabilabs/sabi/ent/sessionrecord"
	"github.com/sabilabs/sabi/ent/user"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	conceptmasteryFields := schema.ConceptMastery{}.Fields()
	_ = conceptmasteryFields
	// conceptmasteryDescStudentID is the schema descriptor for student_id field.
	conceptmasteryDescStudentID := conceptmasteryFields[0].Descriptor()
	// conceptmastery.StudentIDValidator is a validator for the "student_id" field. It is called by the builders before save.
	conceptmastery.StudentIDValidator = conceptmasteryDescStudentID.Validators[0].(func(string) error)
	// conceptmasteryDescConceptID is the schema descriptor for concept_id field.
	conceptmasteryDescConceptID := conceptmasteryFields[1].Descriptor()
	// conceptmastery.ConceptIDValidator is a validator for the "concept_id" field. It is called by the builders before save.
	conceptmastery.ConceptIDValidator = conceptmasteryDescConceptID.Validators[0].(func(string) error)
	// conceptmasteryDescAttempts is the schema descriptor for attempts field.
	conceptmasteryDescAttempts := conceptmasteryFields[3].Descriptor()
	// conceptmastery.DefaultAttempts holds the default value on creation for the attempts field.
	conceptmastery.DefaultAttempts = conceptmasteryDescAttempts.Default.(int)
	// conceptmasteryDescUpdatedAt is the schema descriptor for updated_at field.
	conceptmasteryDescUpdatedAt := conceptmasteryFields[4].Descriptor()
	// conceptmastery.DefaultUpdatedAt holds the default value on creation for the updated_at field.
	conceptmastery.DefaultUpdatedAt = conceptmasteryDescUpdatedAt.Default.(func() time.Time)
	// conceptmastery.UpdateDefaultUpdatedAt holds the default value on update for the updated_at field.
	conceptmastery.UpdateDefaultUpdatedAt = conceptmasteryDescUpdatedAt.UpdateDefault.(func() time.Time)
	llmrequesteventMixin := schema.LLMRequestEvent{}.Mixin()
	llmrequesteventMixinFields0 := llmrequesteventMixin[0].Fields()
	_ = llmrequesteventMixinFields0
	llmrequesteventFields := schema.LLMRequestEvent{}.Fields()
	_ = llmrequesteventFields
	// llmrequesteventDescTimestamp is the schema descriptor for timestamp field.
	llmrequesteventDescTimestamp := llmrequesteventMixinFields0[1].Descriptor()
	// llmrequestevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	llmrequestevent.DefaultTimestamp = llmrequesteventDescTimestamp.Default.(func() time.Time)
	// llmrequesteventDescInputTokens is the schema descriptor for input_tokens field.
	llmrequesteventDescInputTokens := llmrequesteventFields[3].Descriptor()
	// llmrequestevent.DefaultInputTokens holds the default value on creation for the input_tokens field.
	llmrequestevent.DefaultInputTokens = llmrequesteventDescInputTokens.Default.(int)
	// llmrequesteventDescOutputTokens is the schema descriptor for output_tokens field.
	llmrequesteventDescOutputTokens := llmrequesteventFields[4].Descriptor()
	// llmrequestevent.DefaultOutputTokens holds the default value on creation for the output_tokens field.
	llmrequestevent.DefaultOutputTokens = llmrequesteventDescOutputTokens.Default.(int)
	// llmrequesteventDescLatencyMs is the schema descriptor for latency_ms field.
	llmrequesteventDescLatencyMs := llmrequesteventFields[5].Descriptor()
	// llmrequestevent.DefaultLatencyMs holds the default value on creation for the latency_ms field.
	llmrequestevent.DefaultLatencyMs = llmrequesteventDescLatencyMs.Default.(int64)
	// llmrequesteventDescErrorMessage is the schema descriptor for error_message field.
	llmrequesteventDescErrorMessage := llmrequesteventFields[7].Descriptor()
	// llmrequestevent.DefaultErrorMessage holds the default value on creation for the error_message field.
	llmrequestevent.DefaultErrorMessage = llmrequesteventDescErrorMessage.Default.(string)
	responseeventMixin := schema.ResponseEvent{}.Mixin()
	responseeventMixinFields0 := responseeventMixin[0].Fields()
	_ = responseeventMixinFields0
	responseeventFields := schema.ResponseEvent{}.Fields()
	_ = responseeventFields
	// responseeventDescTimestamp is the schema descriptor for timestamp field.
	responseeventDescTimestamp := responseeventMixinFields0[1].Descriptor()
	// responseevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	responseevent.DefaultTimestamp = responseeventDescTimestamp.Default.(func() time.Time)
	// responseeventDescSessionID is the schema descriptor for session_id field.
	responseeventDescSessionID := responseeventFields[0].Descriptor()
	// responseevent.SessionIDValidator is a validator for the "session_id" field. It is called by the builders before save.
	responseevent.SessionIDValidator = responseeventDescSessionID.Validators[0].(func(string) error)
	// responseeventDescStudentID is the schema descriptor for student_id field.
	responseeventDescStudentID := responseeventFields[1].Descriptor()
	// responseevent.StudentIDValidator is a validator for the "student_id" field. It is called by the builders before save.
	responseevent.StudentIDValidator = responseeventDescStudentID.Validators[0].(func(string) error)
	// responseeventDescConceptID is the schema descriptor for concept_id field.
	responseeventDescConceptID := responseeventFields[2].Descriptor()
	// responseevent.ConceptIDValidator is a validator for the "concept_id" field. It is called by the builders before save.
	responseevent.ConceptIDValidator = responseeventDescConceptID.Validators[0].(func(string) error)
	// responseeventDescItemID is the schema descriptor for item_id field.
	responseeventDescItemID := responseeventFields[3].Descriptor()
	// responseevent.ItemIDValidator is a validator for the "item_id" field. It is called by the builders before save.
	responseevent.ItemIDValidator = responseeventDescItemID.Validators[0].(func(string) error)
	// responseeventDescChosenOption is the schema descriptor for chosen_option field.
	responseeventDescChosenOption := responseeventFields[5].Descriptor()
	// responseevent.DefaultChosenOption holds the default value on creation for the chosen_option field.
	responseevent.DefaultChosenOption = responseeventDescChosenOption.Default.(string)
	// responseeventDescDifficulty is the schema descriptor for difficulty field.
	responseeventDescDifficulty := responseeventFields[6].Descriptor()
	// responseevent.DifficultyValidator is a validator for the "difficulty" field. It is called by the builders before save.
	responseevent.DifficultyValidator = responseeventDescDifficulty.Validators[0].(func(string) error)
	// responseeventDescHintsUsed is the schema descriptor for hints_used field.
	responseeventDescHintsUsed := responseeventFields[7].Descriptor()
	// responseevent.DefaultHintsUsed holds the default value on creation for the hints_used field.
	responseevent.DefaultHintsUsed = responseeventDescHintsUsed.Default.(int)
	sessionrecordFields := schema.SessionRecord{}.Fields()
	_ = sessionrecordFields
	// sessionrecordDescSessionID is the schema descriptor for session_id field.
	sessionrecordDescSessionID := sessionrecordFields[0].Descriptor()
	// sessionrecord.SessionIDValidator is a validator for the "session_id" field. It is called by the builders before save.
	sessionrecord.SessionIDValidator = sessionrecordDescSessionID.Validators[0].(func(string) error)
	// sessionrecordDescStudentID is the schema descriptor for student_id field.
	sessionrecordDescStudentID := sessionrecordFields[1].Descriptor()
	// sessionrecord.StudentIDValidator is a validator for the "student_id" field. It is called by the builders before save.
	sessionrecord.StudentIDValidator = sessionrecordDescStudentID.Validators[0].(func(string) error)
	// sessionrecordDescGoal is the schema descriptor for goal field.
	sessionrecordDescGoal := sessionrecordFields[2].Descriptor()
	// sessionrecord.GoalValidator is a validator for the "goal" field. It is called by the builders before save.
	sessionrecord.GoalValidator = sessionrecordDescGoal.Validators[0].(func(string) error)
	// sessionrecordDescSubject is the schema descriptor for subject field.
	sessionrecordDescSubject := sessionrecordFields[3].Descriptor()
	// sessionrecord.DefaultSubject holds the default value on creation for the subject field.
	sessionrecord.DefaultSubject = sessionrecordDescSubject.Default.(string)
	// sessionrecordDescGrade is the schema descriptor for grade field.
	sessionrecordDescGrade := sessionrecordFields[4].Descriptor()
	// sessionrecord.DefaultGrade holds the default value on creation for the grade field.
	sessionrecord.DefaultGrade = sessionrecordDescGrade.Default.(string)
	// sessionrecordDescTopic is the schema descriptor for topic field.
	sessionrecordDescTopic := sessionrecordFields[5].Descriptor()
	// sessionrecord.DefaultTopic holds the default value on creation for the topic field.
	sessionrecord.DefaultTopic = sessionrecordDescTopic.Default.(string)
	// sessionrecordDescStatus is the schema descriptor for status field.
	sessionrecordDescStatus := sessionrecordFields[6].Descriptor()
	// sessionrecord.DefaultStatus holds the default value on creation for the status field.
	sessionrecord.DefaultStatus = sessionrecordDescStatus.Default.(string)
	// sessionrecordDescStartedAt is the schema descriptor for started_at field.
	sessionrecordDescStartedAt := sessionrecordFields[7].Descriptor()
	// sessionrecord.DefaultStartedAt holds the default value on creation for the started_at field.
	sessionrecord.DefaultStartedAt = sessionrecordDescStartedAt.Default.(func() time.Time)
	userFields := schema.User{}.Fields()
	_ = userFields
	// userDescStudentID is the schema descriptor for student_id field.
	userDescStudentID := userFields[0].Descriptor()
	// user.StudentIDValidator is a validator for the "student_id" field. It is called by the builders before save.
	user.StudentIDValidator = userDescStudentID.Validators[0].(func(string) error)
	// userDescName is the schema descriptor for name field.
	userDescName := userFields[1].Descriptor()
	// user.DefaultName holds the default value on creation for the name field.
	user.DefaultName = userDescName.Default.(string)
	// userDescRegisteredAt is the schema descriptor for registered_at field.
	userDescRegisteredAt := userFields[2].Descriptor()
	// user.DefaultRegisteredAt holds the default value on creation for the registered_at field.
	user.DefaultRegisteredAt = userDescRegisteredAt.Default.(func() time.Time)
}
