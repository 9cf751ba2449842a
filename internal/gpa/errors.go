package gpa

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every *ValidationError via errors.Is.
	ErrValidation = errors.New("invalid course entry")
	// ErrEmptyBatch is returned when no entries were submitted.
	ErrEmptyBatch = errors.New("no courses submitted")
)

// ValidationError names the first offending entry and field of a batch.
type ValidationError struct {
	Index  int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("course %d: %s: %s", e.Index+1, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
