// ABOUTME: Process-wide structured logger built on charmbracelet/log
// ABOUTME: Level parsing, a swappable root logger, and component-prefixed children

package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

var root atomic.Pointer[log.Logger]

// New builds a logger writing to w at the given level. Unknown levels
// fall back to warn.
func New(level string, w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
}

// ParseLevel maps a level name to a charm level, accepting "warning".
func ParseLevel(s string) log.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := log.ParseLevel(s)
	if err != nil {
		return log.WarnLevel
	}
	return lvl
}

// Init installs l as the root logger and as charm's default.
func Init(l *log.Logger) {
	root.Store(l)
	log.SetDefault(l)
}

// Get returns the root logger, creating a stderr warn logger on first use.
func Get() *log.Logger {
	if l := root.Load(); l != nil {
		return l
	}
	l := New("warn", os.Stderr)
	if root.CompareAndSwap(nil, l) {
		return l
	}
	return root.Load()
}

// Named returns a child of the root logger prefixed with component.
func Named(component string) *log.Logger {
	return Get().WithPrefix(component)
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
