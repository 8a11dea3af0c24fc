package booking

import (
	"errors"
	"fmt"
)

// ===============================
// Domain Errors
// ===============================

// ValidationError indicates malformed input (unparseable time, non-positive
// duration). Never retried; the caller must fix the input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func ErrValidation(field, reason string) error {
	return ValidationError{Field: field, Reason: reason}
}

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// InvalidTransitionError indicates an attempted status change out of a
// terminal state or along an edge the state machine does not define.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s -> %s", e.From, e.To)
}

func IsInvalidTransition(err error) bool {
	var te InvalidTransitionError
	return errors.As(err, &te)
}

// ConflictError is returned by the persistence layer when a slot was taken
// between the conflict check and the commit.
type ConflictError struct {
	TeacherID uint
	Date      string
	StartTime string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("time conflict for teacher %d on %s at %s", e.TeacherID, e.Date, e.StartTime)
}

func IsConflict(err error) bool {
	var ce ConflictError
	return errors.As(err, &ce)
}
