// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/sabilabs/sabi/ent/conceptmastery"
)

// ConceptMasteryCreate is the builder for creating a ConceptMastery entity.
type ConceptMasteryCreate struct {
	config
	mutation *ConceptMasteryMutation
	hooks    []Hook
}

// SetStudentID sets the "student_id" field.
func (_c *ConceptMasteryCreate) SetStudentID(v string) *ConceptMasteryCreate {
	_c.mutation.SetStudentID(v)
	return _c
}

// SetConceptID sets the "concept_id" field.
func (_c *ConceptMasteryCreate) SetConceptID(v string) *ConceptMasteryCreate {
	_c.mutation.SetConceptID(v)
	return _c
}

// SetProbability sets the "probability" field.
func (_c *ConceptMasteryCreate) SetProbability(v float64) *ConceptMasteryCreate {
	_c.mutation.SetProbability(v)
	return _c
}

// SetAttempts sets the "attempts" field.
func (_c *ConceptMasteryCreate) SetAttempts(v int) *ConceptMasteryCreate {
	_c.mutation.SetAttempts(v)
	return _c
}

// SetNillableAttempts sets the "attempts" field if the given value is not nil.
func (_c *ConceptMasteryCreate) SetNillableAttempts(v *int) *ConceptMasteryCreate {
	if v != nil {
		_c.SetAttempts(*v)
	}
	return _c
}

// SetUpdatedAt sets the "updated_at" field.
func (_c *ConceptMasteryCreate) SetUpdatedAt(v time.Time) *ConceptMasteryCreate {
	_c.mutation.SetUpdatedAt(v)
	return _c
}

// SetNillableUpdatedAt sets the "updated_at" field if the given value is not nil.
func (_c *ConceptMasteryCreate) SetNillableUpdatedAt(v *time.Time) *ConceptMasteryCreate {
	if v != nil {
		_c.SetUpdatedAt(*v)
	}
	return _c
}

// Mutation returns the ConceptMasteryMutation object of the builder.
func (_c *ConceptMasteryCreate) Mutation() *ConceptMasteryMutation {
	return _c.mutation
}

// Save creates the ConceptMastery in the database.
func (_c *ConceptMasteryCreate) Save(ctx context.Context) (*ConceptMastery, error) {
	_c.defaults()
	return withHooks(ctx, _c.sqlSave, _c.mutation, _c.hooks)
}

// SaveX calls Save and panics if Save returns an error.
func (_c *ConceptMasteryCreate) SaveX(ctx context.Context) *ConceptMastery {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *ConceptMasteryCreate) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *ConceptMasteryCreate) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_c *ConceptMasteryCreate) defaults() {
	if _, ok := _c.mutation.Attempts(); !ok {
		v := conceptmastery.DefaultAttempts
		_c.mutation.SetAttempts(v)
	}
	if _, ok := _c.mutation.UpdatedAt(); !ok {
		v := conceptmastery.DefaultUpdatedAt()
		_c.mutation.SetUpdatedAt(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_c *ConceptMasteryCreate) check() error {
	if _, ok := _c.mutation.StudentID(); !ok {
		return &ValidationError{Name: "student_id", err: errors.New(`ent: missing required field "ConceptMastery.student_id"`)}
	}
	if v, ok := _c.mutation.StudentID(); ok {
		if err := conceptmastery.StudentIDValidator(v); err != nil {
			return &ValidationError{Name: "student_id", err: fmt.Errorf(`ent: validator failed for field "ConceptMastery.student_id": %w`, err)}
		}
	}
	if _, ok := _c.mutation.ConceptID(); !ok {
		return &ValidationError{Name: "concept_id", err: errors.New(`ent: missing required field "ConceptMastery.concept_id"`)}
	}
	if v, ok := _c.mutation.ConceptID(); ok {
		if err := conceptmastery.ConceptIDValidator(v); err != nil {
			return &ValidationError{Name: "concept_id", err: fmt.Errorf(`ent: validator failed for field "ConceptMastery.concept_id": %w`, err)}
		}
	}
	if _, ok := _c.mutation.Probability(); !ok {
		return &ValidationError{Name: "probability", err: errors.New(`ent: missing required field "ConceptMastery.probability"`)}
	}
	if _, ok := _c.mutation.Attempts(); !ok {
		return &ValidationError{Name: "attempts", err: errors.New(`ent: missing required field "ConceptMastery.attempts"`)}
	}
	if _, ok := _c.mutation.UpdatedAt(); !ok {
		return &ValidationError{Name: "updated_at", err: errors.New(`ent: missing required field "ConceptMastery.updated_at"`)}
	}
	return nil
}

func (_c *ConceptMasteryCreate) sqlSave(ctx context.Context) (*ConceptMastery, error) {
	if err := _c.check(); err != nil {
		return nil, err
	}
	_node, _spec := _c.createSpec()
	if err := sqlgraph.CreateNode(ctx, _c.driver, _spec); err != nil {
		if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	id := _spec.ID.Value.(int64)
	_node.ID = int(id)
	_c.mutation.id = &_node.ID
	_c.mutation.done = true
	return _node, nil
}

func (_c *ConceptMasteryCreate) createSpec() (*ConceptMastery, *sqlgraph.CreateSpec) {
	var (
		_node = &ConceptMastery{config: _c.config}
		_spec = sqlgraph.NewCreateSpec(conceptmastery.Table, sqlgraph.NewFieldSpec(conceptmastery.FieldID, field.TypeInt))
	)
	if value, ok := _c.mutation.StudentID(); ok {
		_spec.SetField(conceptmastery.FieldStudentID, field.TypeString, value)
		_node.StudentID = value
	}
	if value, ok := _c.mutation.ConceptID(); ok {
		_spec.SetField(conceptmastery.FieldConceptID, field.TypeString, value)
		_node.ConceptID = value
	}
	if value, ok := _c.mutation.Probability(); ok {
		_spec.SetField(conceptmastery.FieldProbability, field.TypeFloat64, value)
		_node.Probability = value
	}
	if value, ok := _c.mutation.Attempts(); ok {
		_spec.SetField(conceptmastery.FieldAttempts, field.TypeInt, value)
		_node.Attempts = value
	}
	if value, ok := _c.mutation.UpdatedAt(); ok {
		_spec.SetField(conceptmastery.FieldUpdatedAt, field.TypeTime, value)
		_node.UpdatedAt = value
	}
	return _node, _spec
}

// ConceptMasteryCreateBulk is the builder for creating many ConceptMastery entities in bulk.
type ConceptMasteryCreateBulk struct {
	config
	err      error
	builders []*ConceptMasteryCreate
}

// Save creates the ConceptMastery entities in the database.
func (_c *ConceptMasteryCreateBulk) Save(ctx context.Context) ([]*ConceptMastery, error) {
	if _c.err != nil {
		return nil, _c.err
	}
	specs := make([]*sqlgraph.CreateSpec, len(_c.builders))
	nodes := make([]*ConceptMastery, len(_c.builders))
	mutators := make([]Mutator, len(_c.builders))
	for i := range _c.builders {
		func(i int, root context.Context) {
			builder := _c.builders[i]
			builder.defaults()
			var mut Mutator = MutateFunc(func(ctx context.Context, m Mutation) (Value, error) {
				mutation, ok := m.(*ConceptMasteryMutation)
				if !ok {
					return nil, fmt.Errorf("unexpected mutation type %T", m)
				}
				if err := builder.check(); err != nil {
					return nil, err
				}
				builder.mutation = mutation
				var err error
				nodes[i], specs[i] = builder.createSpec()
				if i < len(mutators)-1 {
					_, err = mutators[i+1].Mutate(root, _c.builders[i+1].mutation)
				} else {
					spec := &sqlgraph.BatchCreateSpec{Nodes: specs}
					// Invoke the actual operation on the latest mutation in the chain.
					if err = sqlgraph.BatchCreate(ctx, _c.driver, spec); err != nil {
						if sqlgraph.IsConstraintError(err) {
							err = &ConstraintError{msg: err.Error(), wrap: err}
						}
					}
				}
				if err != nil {
					return nil, err
				}
				mutation.id = &nodes[i].ID
				if specs[i].ID.Value != nil {
					id := specs[i].ID.Value.(int64)
					nodes[i].ID = int(id)
				}
				mutation.done = true
				return nodes[i], nil
			})
			for i := len(builder.hooks) - 1; i >= 0; i-- {
				mut = builder.hooks[i](mut)
			}
			mutators[i] = mut
		}(i, ctx)
	}
	if len(mutators) > 0 {
		if _, err := mutators[0].Mutate(ctx, _c.builders[0].mutation); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// SaveX is like Save, but panics if an error occurs.
func (_c *ConceptMasteryCreateBulk) SaveX(ctx context.Context) []*ConceptMastery {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *ConceptMasteryCreateBulk) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *ConceptMasteryCreateBulk) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}
