package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a company is not on the roster.
	ErrNotFound = errors.New("company not found")

	// ErrInvalidRoster is matched by every *ValidationError raised while
	// building the roster.
	ErrInvalidRoster = errors.New("invalid roster")

	// ErrCorruptState means persisted updates exist but cannot be parsed.
	// Stores must return it instead of an empty map.
	ErrCorruptState = errors.New("corrupt update state")
)

// ValidationError reports a roster row that cannot be accepted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("roster %s: %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrInvalidRoster) match without unwrapping.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRoster
}
