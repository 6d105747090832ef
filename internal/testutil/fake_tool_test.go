package testutil

import (
	"os/exec"
	"testing"
)

// TestWriteTool verifies the stub runs and prints its text.
func TestWriteTool(t *testing.T) {
	path := WriteTool(t, t.TempDir(), "echoer", PrintOutput("hello\nworld\n"))
	out, err := exec.Command(path).Output()
	if err != nil {
		t.Fatalf("run stub: %v", err)
	}
	if string(out) != "hello\nworld\n" {
		t.Fatalf("unexpected output %q", out)
	}
}
