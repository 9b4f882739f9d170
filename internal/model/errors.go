package model

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record id does not exist in its collection.
var ErrNotFound = errors.New("record not found")

// ValidationError reports a field that violates a record invariant.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
