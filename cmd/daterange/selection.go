// ABOUTME: Shared helpers for loading, saving, and printing the current selection
// ABOUTME: Resolves range arguments as expressions first, then as saved preset names or IDs

package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/harper/daterange/internal/config"
	"github.com/harper/daterange/internal/daterange"
	"github.com/harper/daterange/internal/picker"
)

// loadSelection returns the persisted selection, or the default range when
// nothing was saved or the saved record is unreadable.
func loadSelection() (daterange.Range, error) {
	rec, ok, err := store.LoadSelection()
	if err != nil {
		return nil, fmt.Errorf("failed to load selection: %w", err)
	}
	if !ok {
		return picker.DefaultRange(cfg.HourShift), nil
	}
	r, err := daterange.FromRecord(rec)
	if err != nil {
		logger.Warn("ignoring saved selection", "err", err)
		return picker.DefaultRange(cfg.HourShift), nil
	}
	return r, nil
}

// loadPicker wraps the persisted selection in a picker.
func loadPicker() (*picker.Picker, error) {
	r, err := loadSelection()
	if err != nil {
		return nil, err
	}
	return picker.New(resolver, r), nil
}

func saveSelection(r daterange.Range) error {
	if err := store.SaveSelection(r.Record()); err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}
	return nil
}

// resolveArg interprets arg as a range expression or a saved preset.
func resolveArg(arg string) (daterange.Range, error) {
	r, err := daterange.ParseSpec(arg, cfg.HourShift, resolver.Calendar().Location())
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, daterange.ErrInvalidSpec) {
		return nil, err
	}

	p, perr := store.GetPresetByIDOrPrefix(arg)
	if perr != nil {
		return nil, fmt.Errorf("%q is neither a range expression nor a saved preset: %w", arg, err)
	}
	return p.DateRange()
}

// parseDay parses a YYYY-MM-DD flag value in the calendar's zone.
func parseDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, resolver.Calendar().Location())
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return &t, nil
}

func formatter() daterange.Formatter {
	return daterange.LayoutFormatter(cfg.DateFormat)
}

// printRange writes the label, bounds, and expression of r.
func printRange(w io.Writer, r daterange.Range) {
	bold := color.New(color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	start, end := resolver.Bounds(r)
	fmt.Fprintln(w, bold(resolver.Describe(r, formatter(), true)))
	fmt.Fprintf(w, "  %s .. %s\n", start.Format(config.DateTimeFormat), end.Format(config.DateTimeFormat))
	fmt.Fprintf(w, "  %s\n", faint(daterange.FormatSpec(r)))
}
