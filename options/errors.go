package options

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed construction input: a bad URL, an
// out-of-range port, or a missing required field. It is always returned
// synchronously from Resolve and is never worth retrying.
type ValidationError struct {
	// Message describes what was malformed.
	Message string
	// Err is the underlying parse error, if any.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("options: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("options: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// IsValidation checks if an error is a construction-time validation error.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}
