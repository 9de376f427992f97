// Package errs defines the error taxonomy shared by the catalog, cart,
// order and analytics services. Every failure carries a machine-readable
// kind plus a human-readable message so HTTP handlers can map it to a
// status code without string matching.
package errs

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation             Kind = "VALIDATION_ERROR"
	KindNotFound               Kind = "NOT_FOUND"
	KindInsufficientStock      Kind = "INSUFFICIENT_STOCK"
	KindInvalidStateTransition Kind = "INVALID_STATE_TRANSITION"
	KindUnauthorized           Kind = "UNAUTHORIZED"
	KindInternal               Kind = "INTERNAL_ERROR"
)

// Error is a kinded error. Wrapped causes are preserved for errors.Is/As.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches any *Error with the same kind, so sentinel comparisons like
// errors.Is(err, errs.InsufficientStock("")) work regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) *Error {
	return newError(KindValidation, format, args...)
}

func NotFound(format string, args ...interface{}) *Error {
	return newError(KindNotFound, format, args...)
}

func InsufficientStock(format string, args ...interface{}) *Error {
	return newError(KindInsufficientStock, format, args...)
}

func InvalidStateTransition(format string, args ...interface{}) *Error {
	return newError(KindInvalidStateTransition, format, args...)
}

func Unauthorized(format string, args ...interface{}) *Error {
	return newError(KindUnauthorized, format, args...)
}

// Internal wraps an unexpected failure (database errors and the like).
func Internal(cause error, format string, args ...interface{}) *Error {
	e := newError(KindInternal, format, args...)
	e.cause = cause
	return e
}

// KindOf extracts the kind from err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
