package reorder

import (
	"fmt"

	"github.com/google/uuid"
)

// ValidationError rejects malformed ids or an index outside the 0..N range
// before any mutation happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// ConcurrencyError is returned by Begin when a session is already active.
// The existing session is left untouched.
type ConcurrencyError struct {
	ActiveSession uuid.UUID
}

func (e *ConcurrencyError) Error() string {
	return fmt.Sprintf("drag session %s is already active", e.ActiveSession)
}

// StoreError wraps a failed or inconsistent store move call. The optimistic
// mutation has already been rolled back when this is returned.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// CancelledError marks a session that ended by cancellation. It is a normal
// terminal state, not a failure.
type CancelledError struct{}

func (e *CancelledError) Error() string {
	return "drag session cancelled"
}

// StateError reports an operation invoked from a state that does not
// permit it (e.g. Drop outside HoveringZone).
type StateError struct {
	Op      string
	Current State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s from state %s", e.Op, e.Current)
}
