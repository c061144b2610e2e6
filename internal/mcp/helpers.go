// ABOUTME: Shared helpers for MCP handlers
// ABOUTME: Turns tool arguments into ranges and ranges into JSON-friendly output

package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/daterange/internal/daterange"
	"github.com/harper/daterange/internal/timeutil"
)

// RangeInput names a range by preset, by expression, or by its fields.
// Exactly one of Preset, Spec, or Case should be set.
type RangeInput struct {
	Preset    *string `json:"preset,omitempty"`
	Spec      *string `json:"spec,omitempty"`
	Case      *string `json:"case,omitempty"`
	Start     *string `json:"start,omitempty"`
	End       *string `json:"end,omitempty"`
	Days      *int    `json:"days,omitempty"`
	Offset    *int    `json:"offset,omitempty"`
	Unit      *string `json:"unit,omitempty"`
	HourShift *int    `json:"hour_shift,omitempty"`
}

// RangeOutput is the resolved view of a range returned by every tool.
type RangeOutput struct {
	Spec       string           `json:"spec"`
	Title      string           `json:"title,omitempty"`
	ShortTitle string           `json:"short_title,omitempty"`
	Label      string           `json:"label"`
	Start      time.Time        `json:"start"`
	End        time.Time        `json:"end"`
	Days       int              `json:"days"`
	HourShift  int              `json:"hour_shift"`
	Record     daterange.Record `json:"record"`
}

// rangeProperties is the input schema fragment shared by range-taking tools.
func rangeProperties() map[string]any {
	return map[string]any{
		"preset": map[string]any{
			"type":        "string",
			"description": "Saved preset name, ID, or ID prefix (min 6 chars). Example: 'Fiscal Q'",
		},
		"spec": map[string]any{
			"type":        "string",
			"description": "Range expression. Examples: 'today', 'last-month', 'past-30', 'unit:quarter:-1', '2015-06-01..2015-06-03'",
		},
		"case": map[string]any{
			"type":        "string",
			"description": "Range kind when building from fields: 'custom', 'past_days', or 'calendar_unit'",
			"enum":        []string{"custom", "past_days", "calendar_unit"},
		},
		"start": map[string]any{
			"type":        "string",
			"description": "Custom start date (YYYY-MM-DD or RFC3339)",
		},
		"end": map[string]any{
			"type":        "string",
			"description": "Custom end date (YYYY-MM-DD or RFC3339)",
		},
		"days": map[string]any{
			"type":        "integer",
			"description": "Day count for past_days. 0 means today only.",
			"minimum":     0,
		},
		"offset": map[string]any{
			"type":        "integer",
			"description": "Offset for calendar_unit: 0 is the current unit, -1 the previous one",
		},
		"unit": map[string]any{
			"type":        "string",
			"description": "Calendar unit for calendar_unit: day, week, month, quarter, year, hour, ...",
		},
		"hour_shift": map[string]any{
			"type":        "integer",
			"description": "Hour (0-23) at which a day begins, for night-shift style days",
			"minimum":     0,
			"maximum":     23,
		},
	}
}

// withProperties merges extra schema properties into the range ones.
func withProperties(extra map[string]any) map[string]any {
	props := rangeProperties()
	for k, v := range extra {
		props[k] = v
	}
	return props
}

// rangeFromInput builds a Range from tool arguments.
func (s *Server) rangeFromInput(in RangeInput) (daterange.Range, error) {
	hourShift := s.hourShift
	if in.HourShift != nil {
		if *in.HourShift < 0 || *in.HourShift > 23 {
			return nil, fmt.Errorf("hour_shift must be between 0 and 23, got %d", *in.HourShift)
		}
		hourShift = *in.HourShift
	}

	switch {
	case in.Preset != nil && *in.Preset != "":
		s.storeMu.Lock()
		p, err := s.store.GetPresetByIDOrPrefix(*in.Preset)
		s.storeMu.Unlock()
		if err != nil {
			return nil, fmt.Errorf("preset not found: %s", *in.Preset)
		}
		r, err := p.DateRange()
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}
		if in.HourShift != nil {
			r = r.WithHourShift(hourShift)
		}
		return r, nil

	case in.Spec != nil && *in.Spec != "":
		return daterange.ParseSpec(*in.Spec, hourShift, s.res.Calendar().Location())

	case in.Case != nil:
		return s.rangeFromFields(in, hourShift)
	}

	return nil, errors.New("range required: give preset, spec, or case")
}

func (s *Server) rangeFromFields(in RangeInput, hourShift int) (daterange.Range, error) {
	kind := strings.ToLower(strings.ReplaceAll(*in.Case, "_", ""))
	switch kind {
	case "custom":
		if in.Start == nil || in.End == nil {
			return nil, errors.New("custom range needs start and end")
		}
		start, err := s.parseDateString(*in.Start)
		if err != nil {
			return nil, fmt.Errorf("invalid start: %w", err)
		}
		end, err := s.parseDateString(*in.End)
		if err != nil {
			return nil, fmt.Errorf("invalid end: %w", err)
		}
		return daterange.NewCustom(start, end, hourShift), nil

	case "pastdays":
		if in.Days == nil {
			return nil, errors.New("past_days range needs days")
		}
		if *in.Days < 0 {
			return nil, fmt.Errorf("days must be non-negative, got %d", *in.Days)
		}
		return daterange.NewPastDays(*in.Days, hourShift), nil

	case "calendarunit":
		if in.Unit == nil {
			return nil, errors.New("calendar_unit range needs unit")
		}
		u, err := timeutil.ParseUnit(*in.Unit)
		if err != nil {
			return nil, err
		}
		offset := 0
		if in.Offset != nil {
			offset = *in.Offset
		}
		return daterange.NewCalendarUnit(offset, u, hourShift), nil
	}

	return nil, fmt.Errorf("unknown case %q: use custom, past_days, or calendar_unit", *in.Case)
}

// parseDateString accepts today, yesterday, YYYY-MM-DD, or RFC3339.
func (s *Server) parseDateString(v string) (time.Time, error) {
	cal := s.res.Calendar()
	now := s.res.Now()

	switch strings.ToLower(strings.TrimSpace(v)) {
	case "today", "now":
		return cal.DayStart(now), nil
	case "yesterday":
		t, err := cal.Add(now, -1, timeutil.Day)
		if err != nil {
			return time.Time{}, err
		}
		return cal.DayStart(t), nil
	}

	if t, err := time.ParseInLocation("2006-01-02", v, cal.Location()); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.In(cal.Location()), nil
	}

	return time.Time{}, fmt.Errorf("cannot parse date %q: use today, yesterday, YYYY-MM-DD, or RFC3339", v)
}

// formatterFor maps a format name to a formatter. Anything else is taken
// as a Go time layout.
func formatterFor(name string) daterange.Formatter {
	switch strings.ToLower(name) {
	case "", "medium":
		return daterange.MediumDate
	case "short":
		return daterange.ShortDate
	case "iso":
		return daterange.ISODate
	default:
		return daterange.LayoutFormatter(name)
	}
}

// output resolves r into its tool output form.
func (s *Server) output(r daterange.Range) RangeOutput {
	start, end := s.res.Bounds(r)
	days, err := s.res.Calendar().DaysBetween(end, start)
	if err != nil {
		days = 0
	}
	out := RangeOutput{
		Spec:      daterange.FormatSpec(r),
		Label:     s.res.Describe(r, daterange.MediumDate, true),
		Start:     start,
		End:       end,
		Days:      days + 1,
		HourShift: r.HourShift(),
		Record:    r.Record(),
	}
	if title, ok := r.Title(); ok {
		out.Title = title
	}
	if short, ok := r.ShortTitle(); ok {
		out.ShortTitle = short
	}
	return out
}

// jsonResult marshals v as the text content of a tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
