// ABOUTME: Parses compact range expressions like "last-month" or "past-30"
// ABOUTME: Used by the CLI and MCP tools to name ranges as text

package daterange

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harper/daterange/internal/timeutil"
)

// ErrInvalidSpec is returned for range expressions that cannot be parsed.
var ErrInvalidSpec = errors.New("invalid range expression")

const specDateLayout = "2006-01-02"

// ParseSpec parses a range expression. Dates are interpreted in loc.
//
// Accepted forms:
//
//	today, yesterday, week, month, quarter, year
//	this-<unit>, last-<unit>, next-<unit>
//	past-<n>
//	unit:<unit>:<offset>
//	2015-06-01..2015-06-03, 2015-06-01
func ParseSpec(s string, hourShift int, loc *time.Location) (Range, error) {
	if loc == nil {
		loc = time.Local
	}
	spec := strings.ToLower(strings.TrimSpace(s))

	switch spec {
	case "":
		return nil, fmt.Errorf("%w: empty", ErrInvalidSpec)
	case "today":
		return Today(hourShift), nil
	case "yesterday":
		return NewCalendarUnit(-1, timeutil.Day, hourShift), nil
	case "week", "month", "quarter", "year":
		u, _ := timeutil.ParseUnit(spec)
		return NewCalendarUnit(0, u, hourShift), nil
	}

	if rest, ok := strings.CutPrefix(spec, "past-"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q needs a day count", ErrInvalidSpec, s)
		}
		return NewPastDays(n, hourShift), nil
	}

	for prefix, offset := range map[string]int{"this-": 0, "last-": -1, "next-": 1} {
		if rest, ok := strings.CutPrefix(spec, prefix); ok {
			u, err := timeutil.ParseUnit(rest)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
			}
			return NewCalendarUnit(offset, u, hourShift), nil
		}
	}

	if rest, ok := strings.CutPrefix(spec, "unit:"); ok {
		parts := strings.Split(rest, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: %q, want unit:<unit>:<offset>", ErrInvalidSpec, s)
		}
		u, err := timeutil.ParseUnit(parts[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
		}
		offset, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("%w: offset %q", ErrInvalidSpec, parts[1])
		}
		return NewCalendarUnit(offset, u, hourShift), nil
	}

	from, to, isRange := strings.Cut(spec, "..")
	if !isRange {
		to = from
	}
	start, err := time.ParseInLocation(specDateLayout, from, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSpec, s)
	}
	end, err := time.ParseInLocation(specDateLayout, to, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSpec, s)
	}
	return NewCustom(start, end, hourShift), nil
}

// FormatSpec renders r as an expression ParseSpec accepts.
func FormatSpec(r Range) string {
	switch v := r.(type) {
	case Custom:
		from, to := v.start.Format(specDateLayout), v.end.Format(specDateLayout)
		if from == to {
			return from
		}
		return from + ".." + to
	case PastDays:
		return fmt.Sprintf("past-%d", v.days)
	case CalendarUnit:
		switch v.offset {
		case 0:
			if v.unit == timeutil.Day {
				return "today"
			}
			return "this-" + v.unit.String()
		case -1:
			if v.unit == timeutil.Day {
				return "yesterday"
			}
			return "last-" + v.unit.String()
		case 1:
			return "next-" + v.unit.String()
		}
		return fmt.Sprintf("unit:%s:%d", v.unit, v.offset)
	default:
		return ""
	}
}
