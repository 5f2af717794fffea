// Package apperr carries the typed errors the API surface exposes. Every
// business failure maps to a stable machine-readable Kind plus a human
// message; controllers translate Kinds to HTTP statuses in pkg/resp.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation            Kind = "VALIDATION_ERROR"
	KindNotFound              Kind = "NOT_FOUND"
	KindUnavailable           Kind = "UNAVAILABLE"
	KindRestaurantConflict    Kind = "RESTAURANT_CONFLICT"
	KindEmptyCart             Kind = "EMPTY_CART"
	KindRestaurantGone        Kind = "RESTAURANT_GONE"
	KindRestaurantUnavailable Kind = "RESTAURANT_UNAVAILABLE"
	KindItemRemoved           Kind = "ITEM_REMOVED"
	KindItemUnavailable       Kind = "ITEM_UNAVAILABLE"
	KindInvalidTransition     Kind = "INVALID_TRANSITION"
	KindForbidden             Kind = "FORBIDDEN"
	KindAuthentication        Kind = "AUTHENTICATION_ERROR"
	KindImmutability          Kind = "IMMUTABILITY_VIOLATION"
	KindInternal              Kind = "INTERNAL"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf reports the Kind of err, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }

// MessageOf returns the human message, falling back to err.Error() for
// untyped errors.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
