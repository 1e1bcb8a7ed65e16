package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by services, repositories and the HTTP boundary.
// Everything a caller can act on wraps one of the four base sentinels, so
// errors.Is(err, ErrConflict) etc. works regardless of the specific kind.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")

	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrNotOwner is the ownership-mismatch kind of ErrForbidden. It is kept
	// distinct so the boundary layer can pick its own status code for it
	// without the services caring.
	ErrNotOwner = fmt.Errorf("%w: not the owner", ErrForbidden)

	ErrStaleVersion     = fmt.Errorf("%w: stale version", ErrConflict)
	ErrNameTaken        = fmt.Errorf("%w: name already taken", ErrConflict)
	ErrPasswordMismatch = fmt.Errorf("%w: current password does not match", ErrConflict)
)

// ValidationError carries the offending field so the caller can fix and
// resubmit.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
