package models

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateEmail is returned when a registration or profile edit
	// collides with another user's email.
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrDuplicateUsername is the case-insensitive username counterpart.
	ErrDuplicateUsername = errors.New("username already in use")
	// ErrInvalidCredentials deliberately covers both unknown email and wrong
	// password so login failures cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotFound is returned by direct-reference operations on an absent
	// gathering or task. Idempotent operations never return it for no-ops.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports a single malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
