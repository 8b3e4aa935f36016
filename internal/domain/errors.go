package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrSeatUnavailable  = errors.New("seat(s) are not available")
	ErrPermissionDenied = errors.New("permission denied")
	ErrConflict         = errors.New("operation conflicts with current state")
	ErrUsernameTaken    = errors.New("username is already taken")
)

// PersistenceError reports a failed snapshot save or load. A failed save does
// not undo the in-memory mutation that triggered it; the caller is told so a
// retry of the save can be attempted.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
