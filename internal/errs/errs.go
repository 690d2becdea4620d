// Package errs defines the classified error vocabulary shared by the
// template engine, the action resolver, the LLM clients, and the output
// sinks. Every failure that crosses a package boundary is an *Error with
// exactly one Kind.
package errs

import (
	"errors"
	"fmt"
)

// Kind enumerates the failure classes.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfig
	KindActionNotFound
	KindInvalidTemplate
	KindNetwork
	KindAuth
	KindRateLimit
	KindBadRequest
	KindService
	KindAPI
	KindOutput
)

// String returns a short stable label, used in logs.
func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindActionNotFound:
		return "action_not_found"
	case KindInvalidTemplate:
		return "invalid_template"
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindRateLimit:
		return "rate_limit"
	case KindBadRequest:
		return "bad_request"
	case KindService:
		return "service_error"
	case KindAPI:
		return "api"
	case KindOutput:
		return "output"
	default:
		return "unknown"
	}
}

// Error is a classified failure: one Kind, a human-readable message, and
// optionally the HTTP status and underlying cause that produced it.
type Error struct {
	Kind    Kind
	Message string
	Status  int   // HTTP status for provider errors, 0 otherwise
	Err     error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

// Unwrap exposes the cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a classified error with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error, keeping it reachable via Unwrap.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...) + ": " + err.Error(),
		Err:     err,
	}
}

// WithStatus attaches the HTTP status that produced the error.
func (e *Error) WithStatus(status int) *Error {
	e.Status = status
	return e
}

// KindOf extracts the Kind from an error chain, KindUnknown if none.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// IsRetryable reports whether the failure is likely transient. The pipeline
// itself never retries; this is advice for callers.
func IsRetryable(err error) bool {
	switch KindOf(err) {
	case KindNetwork, KindRateLimit, KindService:
		return true
	default:
		return false
	}
}
