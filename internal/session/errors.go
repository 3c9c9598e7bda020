package session

import (
	"errors"
	"fmt"
)

// NotFoundError indicates the referenced session or task does not exist.
type NotFoundError struct {
	Resource string // "session" or "task"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// AuthorizationError indicates the session exists but belongs to a
// different user.
type AuthorizationError struct {
	SessionID string
	UserID    int64
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("session %q is not owned by user %d", e.SessionID, e.UserID)
}

// ConflictError indicates the single-active-session invariant would be
// violated. ActiveID is the session the caller must complete or abandon
// first.
type ConflictError struct {
	ActiveID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("user already has an active session %q", e.ActiveID)
}

// InvalidStateError indicates the operation is not a legal transition from
// the session's current status.
type InvalidStateError struct {
	Op     string
	Status Status
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s a session in status %q", e.Op, e.Status)
}

// ValidationError indicates malformed input: a rating out of range, a
// planned duration below the minimum, an unknown kind.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError wraps an underlying store failure so callers can distinguish
// infrastructure faults from domain errors.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsDomainError reports whether err is one of the typed domain failures
// (as opposed to a wrapped storage fault).
func IsDomainError(err error) bool {
	var nf *NotFoundError
	var auth *AuthorizationError
	var conflict *ConflictError
	var state *InvalidStateError
	var validation *ValidationError
	return errors.As(err, &nf) || errors.As(err, &auth) ||
		errors.As(err, &conflict) || errors.As(err, &state) ||
		errors.As(err, &validation)
}
