package memo

import (
	"errors"
	"fmt"
)

var (
	// ErrBlankContent rejects a save whose content is empty after trimming.
	ErrBlankContent = errors.New("memo content is blank")

	// ErrMemoNotFound is returned when an operation names a memo id that
	// does not exist.
	ErrMemoNotFound = errors.New("memo not found")

	// ErrDraftNotFound is returned when an operation names a draft id that
	// does not exist.
	ErrDraftNotFound = errors.New("draft not found")
)

// ReadError wraps a failed store read. The widget process absorbs these
// into a degraded projection and never crashes; the primary application
// reports them to the user.
type ReadError struct {
	Op  string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError wraps a failed store mutation. The attempted content is
// preserved as a draft whenever there is content to preserve, so the user
// can retry without losing the edit; DraftID names that draft.
type WriteError struct {
	Op      string
	DraftID string
	Err     error
}

func (e *WriteError) Error() string {
	if e.DraftID != "" {
		return fmt.Sprintf("%s (content preserved as draft %s): %v", e.Op, e.DraftID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ConfigError means the shared storage location cannot be resolved or
// opened. Fatal at startup in the primary application, which cannot
// function without its store; the widget process instead degrades to an
// empty projection.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ConfigError) Unwrap() error { return e.Err }
