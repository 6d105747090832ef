// Package testutil holds helpers shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// WriteTool writes an executable shell stub into dir and returns its path.
// Tests that use it are skipped on Windows, which has no POSIX shell.
func WriteTool(t testing.TB, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write %s stub: %v", name, err)
	}
	return path
}

// PrintOutput returns a stub body that prints text verbatim.
func PrintOutput(text string) string {
	return "cat <<'EOF'\n" + text + "EOF"
}
