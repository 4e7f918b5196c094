// Package errors carries the API's error taxonomy. Every failure that reaches a
// handler is an *Error whose Status picks the HTTP code and whose Message is safe
// to show to clients; the wrapped cause stays server side.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"error"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Internal reports whether the error is a server fault whose cause must be logged.
func (e *Error) Internal() bool {
	return e != nil && e.Status >= http.StatusInternalServerError
}

// New declares a kind of error.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap returns a copy of kind carrying err as its cause. An empty message keeps kind's message.
func Wrap(err error, kind *Error, message string) *Error {
	wrapped := Clone(kind, message)
	wrapped.Err = err
	return wrapped
}

var (
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "Access token required")
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "Invalid credentials")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "Insufficient permissions")
	ErrInactiveAccount    = New("ACCOUNT_INACTIVE", http.StatusForbidden, "Account is inactive")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrPayloadTooLarge    = New("PAYLOAD_TOO_LARGE", http.StatusRequestEntityTooLarge, "payload too large")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")

	// ErrCacheMiss never reaches clients; the cache layer turns it into a miss.
	ErrCacheMiss = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

func Validation(message string) *Error   { return Clone(ErrValidation, message) }
func NotFound(message string) *Error     { return Clone(ErrNotFound, message) }
func Forbidden(message string) *Error    { return Clone(ErrForbidden, message) }
func Unauthorized(message string) *Error { return Clone(ErrUnauthorized, message) }

// FromError normalises any error into an *Error. Unknown errors become ErrInternal.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal, "")
}

// Clone copies kind, replacing the message when one is given.
func Clone(kind *Error, message string) *Error {
	if kind == nil {
		return nil
	}
	clone := *kind
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// Is reports whether err carries the same code as target.
func Is(err error, target *Error) bool {
	if err == nil || target == nil {
		return false
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code == target.Code
	}
	return false
}
