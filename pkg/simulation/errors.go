package simulation

import (
	"errors"
	"fmt"
)

// EngineError provides structured error information for engine operations.
type EngineError struct {
	Op     string // Operation that failed (e.g., "Pin")
	NodeID string
	Cause  error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.NodeID != "" {
		return fmt.Sprintf("%s node %q: %v", e.Op, e.NodeID, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *EngineError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *EngineError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}
