package models

import (
	"errors"
	"fmt"
)

// ErrRegistryUnavailable marks a postal-code registry transport or decode failure,
// as opposed to a code that simply does not exist.
var ErrRegistryUnavailable = errors.New("postal-code registry unavailable")

// ValidationError is returned when input is rejected before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
