package main

import (
	"os/exec"
	"strings"
	"testing"
)

// TestMain_HelpFlag verifies the Ant-style -help flag works.
func TestMain_HelpFlag(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("go", "run", ".", "-help")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("-help failed: %v\noutput: %s", err, out)
	}
	if !strings.Contains(string(out), "Usage:") {
		t.Errorf("-help output missing usage:\n%s", out)
	}
}

// TestMain_VersionFlag verifies the --version flag works correctly.
func TestMain_VersionFlag(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("go", "run", ".", "--version")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("--version failed: %v\noutput: %s", err, out)
	}
	if !strings.HasPrefix(string(out), "gantry ") {
		t.Errorf("--version output = %q", out)
	}
}
