package domain

import (
	"errors"
	"net/http"
)

// Sentinel errors for common error conditions.
var (
	// ErrNotFound indicates that a requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that the input data is invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict indicates that a write collided with existing state.
	ErrConflict = errors.New("conflict")
)

// ClassifiedError is a failure that maps directly to an HTTP status code and
// a client-visible message. Every builder, gate, and repository returns its
// failures in this shape; the HTTP layer writes Status and Msg verbatim.
type ClassifiedError struct {
	Status int
	Msg    string
}

// Error implements the error interface.
func (e *ClassifiedError) Error() string {
	return e.Msg
}

// Unwrap returns the sentinel matching the status class, for errors.Is.
func (e *ClassifiedError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ErrInvalidInput
	case http.StatusConflict:
		return ErrConflict
	default:
		return nil
	}
}

// NewNotFoundError creates a 404 error for a missing entity. The entity name
// is part of the wire contract, e.g. "article id" yields the message
// "article id is not found".
func NewNotFoundError(entity string) *ClassifiedError {
	return &ClassifiedError{
		Status: http.StatusNotFound,
		Msg:    entity + " is not found",
	}
}

// NewValidationError creates a 400 error with the given client message.
func NewValidationError(msg string) *ClassifiedError {
	return &ClassifiedError{
		Status: http.StatusBadRequest,
		Msg:    msg,
	}
}

// NewConflictError creates a 409 error with the given client message.
func NewConflictError(msg string) *ClassifiedError {
	return &ClassifiedError{
		Status: http.StatusConflict,
		Msg:    msg,
	}
}
