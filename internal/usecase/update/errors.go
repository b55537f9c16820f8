// Package update validates operator submissions and appends them to the
// manual update store.
package update

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSubmission is matched by every *ValidationFailure.
var ErrInvalidSubmission = errors.New("invalid submission")

// ValidationFailure lists the fields that blocked a submission.
// Missing holds empty required fields, Invalid holds fields with values
// outside the allowed set.
type ValidationFailure struct {
	Missing []string `json:"missing,omitempty"`
	Invalid []string `json:"invalid,omitempty"`
}

func (e *ValidationFailure) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid "+strings.Join(e.Invalid, ", "))
	}
	return fmt.Sprintf("please fill in all fields: %s", strings.Join(parts, "; "))
}

func (e *ValidationFailure) Is(target error) bool {
	return target == ErrInvalidSubmission
}
