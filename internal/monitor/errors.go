package monitor

import (
	"errors"
	"fmt"
)

var (
	// ErrToolNotFound means the external query command is not installed or not on PATH.
	ErrToolNotFound = errors.New("tool not found")

	// ErrToolFailed means the command ran but exited with a non-zero status.
	ErrToolFailed = errors.New("tool failed")

	// ErrToolTimeout means the command did not finish within the probe timeout.
	ErrToolTimeout = errors.New("tool timed out")

	// ErrNoGeometry means the command succeeded but its output held no usable geometry.
	ErrNoGeometry = errors.New("no display geometry in output")

	// ErrNativeUnavailable means the platform display API reported no displays.
	ErrNativeUnavailable = errors.New("native display enumeration unavailable")
)

// ToolError records which detection tool failed and why.
type ToolError struct {
	Tool   string
	Err    error
	Stderr string
}

// Error formats the tool name, cause, and the first stderr line when present.
func (e *ToolError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %v: %s", e.Tool, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", e.Tool, e.Err)
}

// Unwrap exposes the classification sentinel.
func (e *ToolError) Unwrap() error {
	return e.Err
}
