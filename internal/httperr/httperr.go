// Package httperr defines the error taxonomy shared by all services and
// its mapping to HTTP status codes.
package httperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a request-terminal error carrying the status code it maps to.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound reports an absent key in a catalog or downstream dataset.
func NotFound(format string, args ...any) *Error {
	return &Error{Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized reports a missing or malformed bearer token.
func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// Unavailable reports a downstream connection failure.
func Unavailable(message string) *Error {
	return &Error{Status: http.StatusServiceUnavailable, Message: message}
}

// NotImplemented reports an endpoint with no implementation.
func NotImplemented(message string) *Error {
	return &Error{Status: http.StatusNotImplemented, Message: message}
}

// From extracts an *Error from err, or wraps it as a generic 500.
// The internal message is never exposed to the client.
func From(err error) *Error {
	var herr *Error
	if errors.As(err, &herr) {
		return herr
	}
	return &Error{Status: http.StatusInternalServerError, Message: "internal server error"}
}
