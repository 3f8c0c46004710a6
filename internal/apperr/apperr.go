// Package apperr defines the closed error taxonomy of the policy layer.
// Handlers and services signal a kind; the HTTP layer owns the translation
// to a status code and a sanitized body. Internal causes ride along for
// server-side logging but never reach the client.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into one of the transport-mappable categories.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindValidation
	KindRateLimited
	KindConflict
)

// HTTPStatus maps the kind to its transport status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation_failed"
	case KindRateLimited:
		return "rate_limited"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a kinded error. Message and Fields are safe to show to clients;
// Err is the internal cause and is logged server-side only.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Unauthenticated signals a missing or invalid session.
func Unauthenticated() *Error {
	return &Error{Kind: KindUnauthenticated, Message: "authentication required"}
}

// Forbidden signals a valid session with an insufficient role.
func Forbidden() *Error {
	return &Error{Kind: KindForbidden, Message: "access denied"}
}

// NotFound signals an absent resource. It carries no resource detail on
// purpose: a row that exists under another tenant must produce a response
// byte-identical to one for a row that does not exist at all.
func NotFound() *Error {
	return &Error{Kind: KindNotFound, Message: "not found"}
}

// Validation signals malformed input with per-field detail.
func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "invalid request", Fields: fields}
}

// RateLimited signals that the caller exceeded a request budget.
func RateLimited() *Error {
	return &Error{Kind: KindRateLimited, Message: "too many requests"}
}

// Conflict signals a uniqueness or state conflict.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Internal wraps an unexpected failure. The cause is logged, never returned
// to the client.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// KindOf extracts the kind from an error chain, defaulting to KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// As extracts the typed error from a chain, if present.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
