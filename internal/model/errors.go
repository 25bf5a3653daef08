package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user id already exists")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
)

// ValidationError is the single error kind surfaced to users. It covers both
// malformed input and violated business rules (duplicate id, unknown user,
// wrong credentials) and carries the display message verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given display message
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// AsValidationError unwraps err into a *ValidationError if it is one
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
