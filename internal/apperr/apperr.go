// Package apperr defines the closed set of request-terminal error kinds
// returned by services. The HTTP layer maps each Kind to a status code.
package apperr

import (
	"errors"
	"fmt"
)

// Kind identifies the category of an application error.
type Kind uint8

const (
	// KindInternal is an unexpected failure. Its cause is logged, never shown.
	KindInternal Kind = iota
	// KindBadRequest is missing or invalid input.
	KindBadRequest
	// KindUnauthenticated covers absent, invalid or expired tokens and wrong
	// login credentials.
	KindUnauthenticated
	// KindConflict is a uniqueness violation such as a duplicate email.
	KindConflict
	// KindNotFound is a missing resource.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is the application error type.
type Error struct {
	Kind    Kind
	Message string
	// Field names the offending input field for KindBadRequest, if any.
	Field string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// BadRequest reports invalid input. field may be empty.
func BadRequest(field, message string) *Error {
	return &Error{Kind: KindBadRequest, Field: field, Message: message}
}

func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Internal wraps an unexpected failure.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Cause: cause}
}

// KindOf returns the Kind of err. Errors that are not *Error are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// As extracts the *Error from err's chain, wrapping anything else as internal.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}
