package upstream

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying upstream failures. Handlers branch on these
// with errors.Is; the wrapped APIError carries the server-provided message.
var (
	ErrUnreachable  = errors.New("upstream unreachable")
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUpstream     = errors.New("upstream error")
)

// APIError is the failure returned by every client call. Status is zero when
// no response was received at all.
type APIError struct {
	Status  int
	Message string
	kind    error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.kind, e.Message)
	}
	return fmt.Sprintf("%s (status %d): %s", e.kind, e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.kind }

func newAPIError(status int, message string) *APIError {
	if message == "" {
		message = "request failed"
	}
	return &APIError{Status: status, Message: message, kind: classify(status)}
}

func classify(status int) error {
	switch {
	case status == 0:
		return ErrUnreachable
	case status == 401:
		return ErrUnauthorized
	case status == 403:
		return ErrForbidden
	case status == 404:
		return ErrNotFound
	case status >= 400 && status < 500:
		return ErrValidation
	default:
		return ErrUpstream
	}
}
