// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/sabilabs/sabi/ent/conceptmastery"
	"github.com/sabilabs/sabi/ent/predicate"
)

// ConceptMasteryUpdate is the builder for updating ConceptMastery entities.
type ConceptMasteryUpdate struct {
	config
	hooks    []Hook
	mutation *ConceptMasteryMutation
}

// Where appends a list predicates to the ConceptMasteryUpdate builder.
func (_u *ConceptMasteryUpdate) Where(ps ...predicate.ConceptMastery) *ConceptMasteryUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetStudentID sets the "student_id" field.
func (_u *ConceptMasteryUpdate) SetStudentID(v string) *ConceptMasteryUpdate {
	_u.mutation.SetStudentID(v)
	return _u
}

// SetNillableStudentID sets the "student_id" field if the given value is not nil.
func (_u *ConceptMasteryUpdate) SetNillableStudentID(v *string) *ConceptMasteryUpdate {
	if v != nil {
		_u.SetStudentID(*v)
	}
	return _u
}

// SetConceptID sets the "concept_id" field.
func (_u *ConceptMasteryUpdate) SetConceptID(v string) *ConceptMasteryUpdate {
	_u.mutation.SetConceptID(v)
	return _u
}

// SetNillableConceptID sets the "concept_id" field if the given value is not nil.
func (_u *ConceptMasteryUpdate) SetNillableConceptID(v *string) *ConceptMasteryUpdate {
	if v != nil {
		_u.SetConceptID(*v)
	}
	return _u
}

// SetProbability sets the "probability" field.
func (_u *ConceptMasteryUpdate) SetProbability(v float64) *ConceptMasteryUpdate {
	_u.mutation.ResetProbability()
	_u.mutation.SetProbability(v)
	return _u
}

// SetNillableProbability sets the "probability" field if the given value is not nil.
func (_u *ConceptMasteryUpdate) SetNillableProbability(v *float64) *ConceptMasteryUpdate {
	if v != nil {
		_u.SetProbability(*v)
	}
	return _u
}

// AddProbability adds value to the "probability" field.
func (_u *ConceptMasteryUpdate) AddProbability(v float64) *ConceptMasteryUpdate {
	_u.mutation.AddProbability(v)
	return _u
}

// SetAttempts sets the "attempts" field.
func (_u *ConceptMasteryUpdate) SetAttempts(v int) *ConceptMasteryUpdate {
	_u.mutation.ResetAttempts()
	_u.mutation.SetAttempts(v)
	return _u
}

// SetNillableAttempts sets the "attempts" field if the given value is not nil.
func (_u *ConceptMasteryUpdate) SetNillableAttempts(v *int) *ConceptMasteryUpdate {
	if v != nil {
		_u.SetAttempts(*v)
	}
	return _u
}

// AddAttempts adds value to the "attempts" field.
func (_u *ConceptMasteryUpdate) AddAttempts(v int) *ConceptMasteryUpdate {
	_u.mutation.AddAttempts(v)
	return _u
}

// SetUpdatedAt sets the "updated_at" field.
func (_u *ConceptMasteryUpdate) SetUpdatedAt(v time.Time) *ConceptMasteryUpdate {
	_u.mutation.SetUpdatedAt(v)
	return _u
}

// Mutation returns the ConceptMasteryMutation object of the builder.
func (_u *ConceptMasteryUpdate) Mutation() *ConceptMasteryMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *ConceptMasteryUpdate) Save(ctx context.Context) (int, error) {
	_u.defaults()
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *ConceptMasteryUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *ConceptMasteryUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *ConceptMasteryUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_u *ConceptMasteryUpdate) defaults() {
	if _, ok := _u.mutation.UpdatedAt(); !ok {
		v := conceptmastery.UpdateDefaultUpdatedAt()
		_u.mutation.SetUpdatedAt(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *ConceptMasteryUpdate) check() error {
	if v, ok := _u.mutation.StudentID(); ok {
		if err := conceptmastery.StudentIDValidator(v); err != nil {
			return &ValidationError{Name: "student_id", err: fmt.Errorf(`ent: validator failed for field "ConceptMastery.student_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.ConceptID(); ok {
		if err := conceptmastery.ConceptIDValidator(v); err != nil {
			return &ValidationError{Name: "concept_id", err: fmt.Errorf(`ent: validator failed for field "ConceptMastery.concept_id": %w`, err)}
		}
	}
	return nil
}

func (_u *ConceptMasteryUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(conceptmastery.Table, conceptmastery.Columns, sqlgraph.NewFieldSpec(conceptmastery.FieldID, field.TypeInt))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.StudentID(); ok {
		_spec.SetField(conceptmastery.FieldStudentID, field.TypeString, value)
	}
	if value, ok := _u.mutation.ConceptID(); ok {
		_spec.SetField(conceptmastery.FieldConceptID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Probability(); ok {
		_spec.SetField(conceptmastery.FieldProbability, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedProbability(); ok {
		_spec.AddField(conceptmastery.FieldProbability, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.Attempts(); ok {
		_spec.SetField(conceptmastery.FieldAttempts, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedAttempts(); ok {
		_spec.AddField(conceptmastery.FieldAttempts, field.TypeInt, value)
	}
	if value, ok := _u.mutation.UpdatedAt(); ok {
		_spec.SetField(conceptmastery.FieldUpdatedAt, field.TypeTime, value)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{conceptmastery.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// ConceptMasteryUpdateOne is the builder for updating a single ConceptMastery entity.
type ConceptMasteryUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *ConceptMasteryMutation
}

// SetStudentID sets the "student_id" field.
func (_u *ConceptMasteryUpdateOne) SetStudentID(v string) *ConceptMasteryUpdateOne {
	_u.mutation.SetStudentID(v)
	return _u
}

// SetNillableStudentID sets the "student_id" field if the given value is not nil.
func (_u *ConceptMasteryUpdateOne) SetNillableStudentID(v *string) *ConceptMasteryUpdateOne {
	if v != nil {
		_u.SetStudentID(*v)
	}
	return _u
}

// SetConceptID sets the "concept_id" field.
func (_u *ConceptMasteryUpdateOne) SetConceptID(v string) *ConceptMasteryUpdateOne {
	_u.mutation.SetConceptID(v)
	return _u
}

// SetNillableConceptID sets the "concept_id" field if the given value is not nil.
func (_u *ConceptMasteryUpdateOne) SetNillableConceptID(v *string) *ConceptMasteryUpdateOne {
	if v != nil {
		_u.SetConceptID(*v)
	}
	return _u
}

// SetProbability sets the "probability" field.
func (_u *ConceptMasteryUpdateOne) SetProbability(v float64) *ConceptMasteryUpdateOne {
	_u.mutation.ResetProbability()
	_u.mutation.SetProbability(v)
	return _u
}

// SetNillableProbability sets the "probability" field if the given value is not nil.
func (_u *ConceptMasteryUpdateOne) SetNillableProbability(v *float64) *ConceptMasteryUpdateOne {
	if v != nil {
		_u.SetProbability(*v)
	}
	return _u
}

// AddProbability adds value to the "probability" field.
func (_u *ConceptMasteryUpdateOne) AddProbability(v float64) *ConceptMasteryUpdateOne {
	_u.mutation.AddProbability(v)
	return _u
}

// SetAttempts sets the "attempts" field.
func (_u *ConceptMasteryUpdateOne) SetAttempts(v int) *ConceptMasteryUpdateOne {
	_u.mutation.ResetAttempts()
	_u.mutation.SetAttempts(v)
	return _u
}

// SetNillableAttempts sets the "attempts" field if the given value is not nil.
func (_u *ConceptMasteryUpdateOne) SetNillableAttempts(v *int) *ConceptMasteryUpdateOne {
	if v != nil {
		_u.SetAttempts(*v)
	}
	return _u
}

// AddAttempts adds value to the "attempts" field.
func (_u *ConceptMasteryUpdateOne) AddAttempts(v int) *ConceptMasteryUpdateOne {
	_u.mutation.AddAttempts(v)
	return _u
}

// SetUpdatedAt sets the "updated_at" field.
func (_u *ConceptMasteryUpdateOne) SetUpdatedAt(v time.Time) *ConceptMasteryUpdateOne {
	_u.mutation.SetUpdatedAt(v)
	return _u
}

// Mutation returns the ConceptMasteryMutation object of the builder.
func (_u *ConceptMasteryUpdateOne) Mutation() *ConceptMasteryMutation {
	return _u.mutation
}

// Where appends a list predicates to the ConceptMasteryUpdate builder.
func (_u *ConceptMasteryUpdateOne) Where(ps ...predicate.ConceptMastery) *ConceptMasteryUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *ConceptMasteryUpdateOne) Select(field string, fields ...string) *ConceptMasteryUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated ConceptMastery entity.
func (_u *ConceptMasteryUpdateOne) Save(ctx context.Context) (*ConceptMastery, error) {
	_u.defaults()
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *ConceptMasteryUpdateOne) SaveX(ctx context.Context) *ConceptMastery {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *ConceptMasteryUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *ConceptMasteryUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_u *ConceptMasteryUpdateOne) defaults() {
	if _, ok := _u.mutation.UpdatedAt(); !ok {
		v := conceptmastery.UpdateDefaultUpdatedAt()
		_u.mutation.SetUpdatedAt(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *ConceptMasteryUpdateOne) check() error {
	if v, ok := _u.mutation.StudentID(); ok {
		if err := conceptmastery.StudentIDValidator(v); err != nil {
			return &ValidationError{Name: "student_id", err: fmt.Errorf(`ent: validator failed for field "ConceptMastery.student_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.ConceptID(); ok {
		if err := conceptmastery.ConceptIDValidator(v); err != nil {
			return &ValidationError{Name: "concept_id", err: fmt.Errorf(`ent: validator failed for field "ConceptMastery.concept_id": %w`, err)}
		}
	}
	return nil
}

func (_u *ConceptMasteryUpdateOne) sqlSave(ctx context.Context) (_node *ConceptMastery, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(conceptmastery.Table, conceptmastery.Columns, sqlgraph.NewFieldSpec(conceptmastery.FieldID, field.TypeInt))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "ConceptMastery.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, conceptmastery.FieldID)
		for _, f := range fields {
			if !conceptmastery.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != conceptmastery.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.StudentID(); ok {
		_spec.SetField(conceptmastery.FieldStudentID, field.TypeString, value)
	}
	if value, ok := _u.mutation.ConceptID(); ok {
		_spec.SetField(conceptmastery.FieldConceptID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Probability(); ok {
		_spec.SetField(conceptmastery.FieldProbability, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedProbability(); ok {
		_spec.AddField(conceptmastery.FieldProbability, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.Attempts(); ok {
		_spec.SetField(conceptmastery.FieldAttempts, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedAttempts(); ok {
		_spec.AddField(conceptmastery.FieldAttempts, field.TypeInt, value)
	}
	if value, ok := _u.mutation.UpdatedAt(); ok {
		_spec.SetField(conceptmastery.FieldUpdatedAt, field.TypeTime, value)
	}
	_node = &ConceptMastery{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{conceptmastery.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
