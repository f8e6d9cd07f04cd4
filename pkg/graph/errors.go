package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrDuplicateNode = errors.New("duplicate node id")
	ErrNodeNotFound  = errors.New("node not found")
	ErrEmptyNodeID   = errors.New("empty node id")
)

// SnapshotError provides structured error information for snapshot
// construction failures.
type SnapshotError struct {
	Op     string // Operation that failed (e.g., "NewSnapshot")
	NodeID string // Offending node ID, if applicable
	Cause  error
}

// Error implements the error interface.
func (e *SnapshotError) Error() string {
	if e.NodeID != "" {
		return fmt.Sprintf("%s node %q: %v", e.Op, e.NodeID, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *SnapshotError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *SnapshotError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}
