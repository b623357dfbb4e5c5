package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrNodeNotFound = errors.New("node not found")
	ErrEdgeNotFound = errors.New("edge not found")
)

// Error provides structured error information for network operations.
type Error struct {
	Op      string // Operation that failed (e.g., "subnetwork", "read")
	Node    string // Node ID (if applicable)
	From    string // Edge source (if applicable)
	To      string // Edge target (if applicable)
	Context string // Additional context
	Cause   error  // Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.From != "" || e.To != "":
		if e.Context != "" {
			return fmt.Sprintf("%s edge %s->%s (%s): %v", e.Op, e.From, e.To, e.Context, e.Cause)
		}
		return fmt.Sprintf("%s edge %s->%s: %v", e.Op, e.From, e.To, e.Cause)
	case e.Node != "":
		return fmt.Sprintf("%s node %s: %v", e.Op, e.Node, e.Cause)
	case e.Context != "":
		return fmt.Sprintf("%s (%s): %v", e.Op, e.Context, e.Cause)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// NodeNotFoundError creates a structured node-not-found error.
func NodeNotFoundError(op, id string) error {
	return &Error{Op: op, Node: id, Cause: ErrNodeNotFound}
}

// EdgeNotFoundError creates a structured edge-not-found error.
func EdgeNotFoundError(op, from, to string) error {
	return &Error{Op: op, From: from, To: to, Cause: ErrEdgeNotFound}
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound) || errors.Is(err, ErrEdgeNotFound)
}
