package api

import (
	"fmt"

	"github.com/mbranch/crud-api/internal/api/shared"
)

// Error is a failure that has already been classified into an HTTP status
// and a client-safe message. Classify passes these through unchanged, so
// any layer can pin a specific status by returning one.
type Error struct {
	Status  int
	Message string
	Err     error // original cause, logged but never sent to the client
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the original cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a pre-classified HTTP error.
func NewError(status int, message string, cause error) *Error {
	return &Error{Status: status, Message: message, Err: cause}
}

// StatusCoder is implemented by errors that carry their own HTTP status
// code. Classify honors a non-zero code before falling back to the generic
// default.
type StatusCoder interface {
	StatusCode() int
}

// ValidationError is a form binding failure carrying per-field violations.
// The response layer renders it as a structured 400 listing every field.
type ValidationError struct {
	Fields []shared.FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}
