package resolve

import (
	"errors"
	"fmt"

	"github.com/vsariola/harmonia"
)

var (
	// ErrResolutionFailed is matched by every error returned from this
	// package: errors.Is(err, ErrResolutionFailed) tells that the node should
	// be treated as silent.
	ErrResolutionFailed = errors.New("resolution failed")
	ErrCycleDetected    = errors.New("cycle detected")
	ErrNodeNotFound     = errors.New("node not found")
)

// ResolutionError tells which node could not be resolved and why. It wraps
// both ErrResolutionFailed and the cause (ErrCycleDetected or
// ErrNodeNotFound).
type ResolutionError struct {
	Node harmonia.NodeID
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("could not resolve %v: %v", e.Node, e.Err)
}

func (e *ResolutionError) Unwrap() []error {
	return []error{ErrResolutionFailed, e.Err}
}
