package apperr

import (
	"errors"
	"net/http"
)

// Error is a domain error carrying a stable application code and the HTTP
// status class it maps to at the boundary. Codes are stable for clients
// (BE-01 internal, BE-02 user not found, BE-03 duplicate user, ...).
type Error struct {
	Code    string `json:"code"`
	Status  int    `json:"-"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// WithCause attaches the underlying error for logging; it is never serialized.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

func BadRequest(code, message string) *Error {
	return New(code, http.StatusBadRequest, message)
}

func Unauthorized(code, message string) *Error {
	return New(code, http.StatusUnauthorized, message)
}

func NotFound(code, message string) *Error {
	return New(code, http.StatusNotFound, message)
}

func Conflict(code, message string) *Error {
	return New(code, http.StatusConflict, message)
}

func Internal(code, message string) *Error {
	return New(code, http.StatusInternalServerError, message)
}

// From returns err as an *Error, wrapping unknown errors as BE-01 so the
// boundary never leaks internals to clients.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal("BE-01", "Something went wrong").WithCause(err)
}
