// ABOUTME: Tests for version command
// ABOUTME: Verifies version information display

package main

import (
	"strings"
	"testing"
)

func TestVersionVariables(t *testing.T) {
	if Version == "" {
		t.Error("expected Version to be set")
	}
	if Commit == "" {
		t.Error("expected Commit to be set")
	}
	if BuildDate == "" {
		t.Error("expected BuildDate to be set")
	}
}

func TestVersionOutput(t *testing.T) {
	out, err := runCLI(t, newTestConfig(t), "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "daterange "+Version) {
		t.Errorf("expected version line, got %q", out)
	}
	if !strings.Contains(out, "commit:") {
		t.Errorf("expected commit line, got %q", out)
	}
}
