package store

import "fmt"

// PersistenceError wraps a failed write to the tabular store. Callers keep
// their in-memory state authoritative and surface the discrepancy instead
// of retrying or swallowing it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// persistErr wraps err as a *PersistenceError, or returns nil.
func persistErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
