// ABOUTME: Tests for logger construction and level handling
// ABOUTME: Writes into buffers to check filtering and prefixes

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug":   log.DebugLevel,
		"INFO":    log.InfoLevel,
		" warn ":  log.WarnLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"bogus":   log.WarnLevel,
		"":        log.WarnLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New("info", &buf)

	l.Debug("hidden")
	l.Info("shown", "unit", "month")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "unit=month") {
		t.Errorf("info line missing: %q", out)
	}
}

func TestNamedUsesRootAndPrefix(t *testing.T) {
	prev := Get()
	defer Init(prev)

	var buf bytes.Buffer
	Init(New("debug", &buf))

	Named("watch").Info("tick")
	out := buf.String()
	if !strings.Contains(out, "watch") || !strings.Contains(out, "tick") {
		t.Errorf("expected prefixed line, got %q", out)
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic and must not write anywhere observable.
	Discard().Error("nothing to see")
}
