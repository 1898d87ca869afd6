// Package apperrors holds the error kinds shared across modules. Module
// errors wrap one of these so the HTTP layer can map them to status codes.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidState     = errors.New("invalid state")
	ErrAlreadyFinalized = errors.New("game already finalized")
	ErrValidation       = errors.New("validation failed")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("conflict")
	ErrUnauthorized     = errors.New("unauthorized")
)

// InvalidStateError reports an operation attempted in the wrong game status.
type InvalidStateError struct {
	Operation string
	Status    string
	Expected  string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: game is %s, expected %s", e.Operation, e.Status, e.Expected)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError names the missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
