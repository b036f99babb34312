package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAuthExpired is returned when an authenticated call is rejected with 401.
	// The session has already been torn down when a caller sees it.
	ErrAuthExpired = errors.New("session expired, please log in again")

	// ErrNotFound is returned when no local entry matches an id.
	ErrNotFound = errors.New("not found")

	// ErrPending is returned for mutations on a menu item whose add has not
	// been confirmed by the server yet.
	ErrPending = errors.New("item is awaiting server confirmation")
)

// ValidationError is a local, pre-network input failure.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Invalid is shorthand for a *ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NetworkError wraps a transport failure (unreachable host, reset, timeout).
type NetworkError struct {
	Op      string
	Timeout bool
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s: request timed out", e.Op)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-2xx response other than an authenticated 401.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if text := http.StatusText(e.Status); text != "" {
		return fmt.Sprintf("server error: %d %s", e.Status, text)
	}
	return fmt.Sprintf("server error: %d", e.Status)
}

// DecodeError is a 2xx response whose body could not be decoded.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "malformed response: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

// IsStatus reports whether err is a ServerError with the given status.
func IsStatus(err error, status int) bool {
	var se *ServerError
	return errors.As(err, &se) && se.Status == status
}
