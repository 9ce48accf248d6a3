package workout

import (
	"errors"
	"fmt"
)

var ErrWorkoutNotFound = errors.New("workout not found")
var ErrInvalidWorkout = errors.New("invalid workout")
var ErrPersistence = errors.New("workout store failure")

// ValidationError describes input rejected before it reaches the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid workout %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidWorkout
}

// PersistenceError reports a store operation that did not commit. It matches both ErrPersistence
// and the underlying driver error.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("could not %s workout: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}
