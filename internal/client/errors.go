package client

import (
	"errors"
	"fmt"
)

// FailureKind tells the retry layer how to treat a failed call.
type FailureKind int

const (
	// Terminal failures are never retried: validation, auth, malformed
	// responses and anything unrecognised.
	Terminal FailureKind = iota
	// Transient failures mean the record store's backing storage was
	// unavailable; the same call may succeed later.
	Transient
	// NetworkUnreachable means no response arrived at all.
	NetworkUnreachable
)

func (k FailureKind) String() string {
	switch k {
	case Transient:
		return "transient"
	case NetworkUnreachable:
		return "network"
	default:
		return "terminal"
	}
}

// APIError is returned by every APIClient call that fails.
type APIError struct {
	Kind       FailureKind
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Kind == NetworkUnreachable && e.Err != nil {
		return e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// KindOf classifies err. Errors that did not come from the transport are
// terminal.
func KindOf(err error) FailureKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return Terminal
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
