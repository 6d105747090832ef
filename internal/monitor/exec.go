package monitor

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds how long output pipes may stay open after the command is killed.
const waitDelay = 500 * time.Millisecond

// runTool executes a query command with a deadline and classifies any failure.
func runTool(ctx context.Context, path string, args []string, timeout time.Duration) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, path, args...)
	configureCmd(cmd)
	cmd.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}

	toolErr := &ToolError{Tool: path, Stderr: firstLine(stderr.String())}
	var exitErr *exec.ExitError
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		toolErr.Err = ErrToolTimeout
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		toolErr.Err = ErrToolNotFound
	case errors.As(err, &exitErr):
		toolErr.Err = ErrToolFailed
	default:
		toolErr.Err = errors.Join(ErrToolFailed, err)
	}
	return "", toolErr
}

// firstLine trims output down to its first non-empty line.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
