package errdef

import (
	"errors"
	"fmt"
)

// NewBadRequest creates an error representing a request the caller should fix.
func NewBadRequest(format string, a ...any) error {
	return badRequest{fmt.Errorf(format, a...)}
}

type badRequest struct{ error }

// IsBadRequest returns true if err represents a request the caller should fix and false otherwise.
func IsBadRequest(err error) bool {
	var e badRequest
	return errors.As(err, &e)
}

// NewUnauthorized creates an error representing a missing or invalid credential.
func NewUnauthorized(format string, a ...any) error {
	return unauthorized{fmt.Errorf(format, a...)}
}

type unauthorized struct{ error }

// IsUnauthorized returns true if err represents a missing or invalid credential and false otherwise.
func IsUnauthorized(err error) bool {
	var e unauthorized
	return errors.As(err, &e)
}

// NewForbidden creates an error representing an action the caller is not allowed to take.
func NewForbidden(format string, a ...any) error {
	return forbidden{fmt.Errorf(format, a...)}
}

type forbidden struct{ error }

// IsForbidden returns true if err represents an action the caller is not allowed to take and false otherwise.
func IsForbidden(err error) bool {
	var e forbidden
	return errors.As(err, &e)
}

// NewNotFound creates an error representing a resource that could not be found.
func NewNotFound(format string, a ...any) error {
	return notFound{fmt.Errorf(format, a...)}
}

type notFound struct{ error }

// IsNotFound returns true if err is an error representing a resource that could not be found and false otherwise.
func IsNotFound(err error) bool {
	var e notFound
	return errors.As(err, &e)
}

// NewConflict creates an error representing a conflicting state.
func NewConflict(format string, a ...any) error {
	return conflict{fmt.Errorf(format, a...)}
}

type conflict struct{ error }

// IsConflict returns true if err is an error representing a conflict and false otherwise.
func IsConflict(err error) bool {
	var e conflict
	return errors.As(err, &e)
}
