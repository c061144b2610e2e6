// ABOUTME: Tests for MCP tool handlers and input validation
// ABOUTME: Resolves, moves, restricts, and describes ranges; manages presets and the selection

package mcp

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/harper/daterange/internal/daterange"
	"github.com/harper/daterange/internal/timeutil"
)

func utc(y int, m time.Month, d, h, min, sec int) time.Time {
	return time.Date(y, m, d, h, min, sec, 0, time.UTC)
}

func resolve(t *testing.T, s *Server, input RangeInput) RangeOutput {
	t.Helper()
	result, err := s.handleResolveRange(context.Background(), toolRequest(t, input))
	if err != nil {
		t.Fatalf("resolve_range failed: %v", err)
	}
	var out RangeOutput
	decodeResult(t, result, &out)
	return out
}

func checkBounds(t *testing.T, out RangeOutput, start, end time.Time, days int) {
	t.Helper()
	if !out.Start.Equal(start) {
		t.Errorf("start: got %v, want %v", out.Start, start)
	}
	if !out.End.Equal(end) {
		t.Errorf("end: got %v, want %v", out.End, end)
	}
	if out.Days != days {
		t.Errorf("days: got %d, want %d", out.Days, days)
	}
}

// Resolve

func TestHandleResolveRange_Spec(t *testing.T) {
	s, _ := setupTestServer(t)

	out := resolve(t, s, RangeInput{Spec: strPtr("last-month")})
	checkBounds(t, out, utc(2015, 5, 1, 0, 0, 0), utc(2015, 5, 31, 23, 59, 59), 31)
	if out.Label != "May 2015" {
		t.Errorf("label: got %q", out.Label)
	}
	if out.Title != "Last Month" {
		t.Errorf("title: got %q", out.Title)
	}
	if out.Spec != "last-month" {
		t.Errorf("spec: got %q", out.Spec)
	}
	if out.Record.Case != daterange.CaseCalendarUnit {
		t.Errorf("record case: got %q", out.Record.Case)
	}
}

func TestHandleResolveRange_PastDays(t *testing.T) {
	s, _ := setupTestServer(t)

	out := resolve(t, s, RangeInput{Case: strPtr("past_days"), Days: intPtr(7)})
	checkBounds(t, out, utc(2015, 6, 3, 0, 0, 0), utc(2015, 6, 10, 23, 59, 59), 8)
	if out.Label != "Past 7 Days" {
		t.Errorf("label: got %q", out.Label)
	}
	if out.ShortTitle != "7 Days" {
		t.Errorf("short title: got %q", out.ShortTitle)
	}
}

func TestHandleResolveRange_Custom(t *testing.T) {
	s, _ := setupTestServer(t)

	out := resolve(t, s, RangeInput{Case: strPtr("custom"), Start: strPtr("2015-06-15"), End: strPtr("2015-06-17")})
	checkBounds(t, out, utc(2015, 6, 15, 0, 0, 0), utc(2015, 6, 17, 23, 59, 59), 3)
	if out.Label != "Jun 15, 2015 – Jun 17, 2015" {
		t.Errorf("label: got %q", out.Label)
	}
}

func TestHandleResolveRange_CalendarUnit(t *testing.T) {
	s, _ := setupTestServer(t)

	out := resolve(t, s, RangeInput{Case: strPtr("calendar_unit"), Unit: strPtr("quarter"), Offset: intPtr(-1)})
	checkBounds(t, out, utc(2015, 1, 1, 0, 0, 0), utc(2015, 3, 31, 23, 59, 59), 90)
	if out.Label != "Last Quarter" {
		t.Errorf("label: got %q", out.Label)
	}
}

func TestHandleResolveRange_HourShift(t *testing.T) {
	s, _ := setupTestServer(t)

	// At noon a day starting at 13:00 has not begun yet.
	out := resolve(t, s, RangeInput{Spec: strPtr("today"), HourShift: intPtr(13)})
	checkBounds(t, out, utc(2015, 6, 9, 0, 0, 0), utc(2015, 6, 9, 23, 59, 59), 1)
	if out.HourShift != 13 {
		t.Errorf("hour shift: got %d", out.HourShift)
	}
}

func TestHandleResolveRange_InvalidInput(t *testing.T) {
	s, _ := setupTestServer(t)

	tests := []struct {
		name  string
		input RangeInput
		want  string
	}{
		{"empty", RangeInput{}, "range required"},
		{"unknown case", RangeInput{Case: strPtr("fortnight")}, "unknown case"},
		{"custom without end", RangeInput{Case: strPtr("custom"), Start: strPtr("2015-06-01")}, "needs start and end"},
		{"bad date", RangeInput{Case: strPtr("custom"), Start: strPtr("June"), End: strPtr("2015-06-01")}, "cannot parse date"},
		{"negative days", RangeInput{Case: strPtr("past_days"), Days: intPtr(-3)}, "non-negative"},
		{"missing unit", RangeInput{Case: strPtr("calendar_unit")}, "needs unit"},
		{"bad unit", RangeInput{Case: strPtr("calendar_unit"), Unit: strPtr("fortnight")}, "unsupported"},
		{"bad spec", RangeInput{Spec: strPtr("whenever")}, "invalid range expression"},
		{"hour shift", RangeInput{Spec: strPtr("today"), HourShift: intPtr(24)}, "hour_shift"},
		{"unknown preset", RangeInput{Preset: strPtr("Nope")}, "preset not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.handleResolveRange(context.Background(), toolRequest(t, tt.input))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if result != nil {
				t.Errorf("expected nil result, got %v", result)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got: %v", tt.want, err)
			}
		})
	}
}

// Move

func TestHandleMoveRange_CalendarUnit(t *testing.T) {
	s, _ := setupTestServer(t)

	result, err := s.handleMoveRange(context.Background(), toolRequest(t, MoveRangeInput{
		RangeInput: RangeInput{Spec: strPtr("last-month")},
	}))
	if err != nil {
		t.Fatalf("move_range failed: %v", err)
	}
	var out RangeOutput
	decodeResult(t, result, &out)
	if out.Spec != "this-month" || out.Label != "This Month" {
		t.Errorf("expected this month, got %q (%q)", out.Spec, out.Label)
	}

	result, err = s.handleMoveRange(context.Background(), toolRequest(t, MoveRangeInput{
		RangeInput: RangeInput{Spec: strPtr("last-month")},
		Steps:      intPtr(-1),
	}))
	if err != nil {
		t.Fatalf("move_range failed: %v", err)
	}
	decodeResult(t, result, &out)
	if out.Label != "April 2015" {
		t.Errorf("expected April 2015, got %q", out.Label)
	}
}

func TestHandleMoveRange_PastDaysBecomesCustom(t *testing.T) {
	s, _ := setupTestServer(t)

	result, err := s.handleMoveRange(context.Background(), toolRequest(t, MoveRangeInput{
		RangeInput: RangeInput{Spec: strPtr("past-7")},
		Steps:      intPtr(-1),
	}))
	if err != nil {
		t.Fatalf("move_range failed: %v", err)
	}
	var out RangeOutput
	decodeResult(t, result, &out)
	if out.Spec != "2015-05-26..2015-06-02" {
		t.Errorf("spec: got %q", out.Spec)
	}
	checkBounds(t, out, utc(2015, 5, 26, 0, 0, 0), utc(2015, 6, 2, 23, 59, 59), 8)
}

// Restrict

func TestHandleRestrictRange(t *testing.T) {
	s, _ := setupTestServer(t)

	result, err := s.handleRestrictRange(context.Background(), toolRequest(t, RestrictRangeInput{
		RangeInput: RangeInput{Spec: strPtr("last-month")},
		Min:        strPtr("2015-05-10"),
	}))
	if err != nil {
		t.Fatalf("restrict_range failed: %v", err)
	}
	var out RangeOutput
	decodeResult(t, result, &out)
	checkBounds(t, out, utc(2015, 5, 10, 0, 0, 0), utc(2015, 5, 31, 23, 59, 59), 22)
	if out.Record.Case != daterange.CaseCustom {
		t.Errorf("expected custom record, got %q", out.Record.Case)
	}
}

func TestHandleRestrictRange_Unchanged(t *testing.T) {
	s, _ := setupTestServer(t)

	result, err := s.handleRestrictRange(context.Background(), toolRequest(t, RestrictRangeInput{
		RangeInput: RangeInput{Spec: strPtr("last-month")},
		Min:        strPtr("2015-01-01"),
		Max:        strPtr("today"),
	}))
	if err != nil {
		t.Fatalf("restrict_range failed: %v", err)
	}
	var out RangeOutput
	decodeResult(t, result, &out)
	if out.Spec != "last-month" {
		t.Errorf("expected range to stay relative, got %q", out.Spec)
	}
}

func TestHandleRestrictRange_MaxBeforeMin(t *testing.T) {
	s, _ := setupTestServer(t)

	_, err := s.handleRestrictRange(context.Background(), toolRequest(t, RestrictRangeInput{
		RangeInput: RangeInput{Spec: strPtr("today")},
		Min:        strPtr("2015-06-10"),
		Max:        strPtr("2015-06-01"),
	}))
	if err == nil || !strings.Contains(err.Error(), "before min") {
		t.Errorf("expected 'before min' error, got %v", err)
	}
}

// Describe

func TestHandleDescribeRange(t *testing.T) {
	s, _ := setupTestServer(t)

	tests := []struct {
		name  string
		input DescribeRangeInput
		want  string
	}{
		{
			name:  "relative title",
			input: DescribeRangeInput{RangeInput: RangeInput{Spec: strPtr("this-week")}},
			want:  "This Week",
		},
		{
			name: "absolute iso",
			input: DescribeRangeInput{
				RangeInput: RangeInput{Spec: strPtr("this-week")},
				Format:     strPtr("iso"),
				Relative:   boolPtr(false),
			},
			want: "2015-06-07 – 2015-06-13",
		},
		{
			name: "month is named",
			input: DescribeRangeInput{
				RangeInput: RangeInput{Spec: strPtr("this-month")},
				Relative:   boolPtr(false),
			},
			want: "June 2015",
		},
		{
			name: "single day short",
			input: DescribeRangeInput{
				RangeInput: RangeInput{Spec: strPtr("2015-06-15")},
				Format:     strPtr("short"),
			},
			want: "15.06.15",
		},
		{
			name: "custom layout",
			input: DescribeRangeInput{
				RangeInput: RangeInput{Spec: strPtr("2015-06-15..2015-06-16")},
				Format:     strPtr("Jan 2"),
			},
			want: "Jun 15 – Jun 16",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.handleDescribeRange(context.Background(), toolRequest(t, tt.input))
			if err != nil {
				t.Fatalf("describe_range failed: %v", err)
			}
			var out DescribeRangeOutput
			decodeResult(t, result, &out)
			if out.Label != tt.want {
				t.Errorf("label: got %q, want %q", out.Label, tt.want)
			}
		})
	}
}

// Presets

func TestPresetLifecycle(t *testing.T) {
	s, store := setupTestServer(t)
	ctx := context.Background()

	// Save
	result, err := s.handleSavePreset(ctx, toolRequest(t, SavePresetInput{
		Name:        "Fiscal Q",
		Description: strPtr("quarter for the board"),
		RangeInput:  RangeInput{Case: strPtr("calendar_unit"), Unit: strPtr("quarter"), Offset: intPtr(-1)},
	}))
	if err != nil {
		t.Fatalf("save_preset failed: %v", err)
	}
	var saved SavePresetOutput
	decodeResult(t, result, &saved)
	if !saved.Success || saved.Preset.Name != "Fiscal Q" {
		t.Errorf("unexpected save output: %+v", saved)
	}

	// Duplicate name without overwrite
	_, err = s.handleSavePreset(ctx, toolRequest(t, SavePresetInput{
		Name:       "Fiscal Q",
		RangeInput: RangeInput{Spec: strPtr("this-quarter")},
	}))
	if err == nil || !strings.Contains(err.Error(), "preset already exists") {
		t.Errorf("expected 'preset already exists' error, got %v", err)
	}

	// Overwrite
	_, err = s.handleSavePreset(ctx, toolRequest(t, SavePresetInput{
		Name:       "Fiscal Q",
		Overwrite:  boolPtr(true),
		RangeInput: RangeInput{Spec: strPtr("this-quarter")},
	}))
	if err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	p, err := store.GetPresetByName("Fiscal Q")
	if err != nil {
		t.Fatalf("preset missing from store: %v", err)
	}
	r, _ := p.DateRange()
	if r != daterange.NewCalendarUnit(0, timeutil.Quarter, 0) {
		t.Errorf("expected overwritten range, got %v", r)
	}
	if p.Description == nil || *p.Description != "quarter for the board" {
		t.Errorf("description should survive overwrite, got %v", p.Description)
	}

	// Resolve by preset name
	out := resolve(t, s, RangeInput{Preset: strPtr("Fiscal Q")})
	checkBounds(t, out, utc(2015, 4, 1, 0, 0, 0), utc(2015, 6, 30, 23, 59, 59), 91)

	// List
	result, err = s.handleListPresets(ctx, toolRequest(t, struct{}{}))
	if err != nil {
		t.Fatalf("list_presets failed: %v", err)
	}
	var list ListPresetsOutput
	decodeResult(t, result, &list)
	if list.Count != 1 || len(list.Presets) != 1 {
		t.Fatalf("expected 1 preset, got %d", list.Count)
	}
	if list.Presets[0].Range.Title != "This Quarter" {
		t.Errorf("unexpected preset title %q", list.Presets[0].Range.Title)
	}

	// Delete by ID prefix
	result, err = s.handleDeletePreset(ctx, toolRequest(t, DeletePresetInput{Preset: p.ID[:8]}))
	if err != nil {
		t.Fatalf("delete_preset failed: %v", err)
	}
	var deleted DeletePresetOutput
	decodeResult(t, result, &deleted)
	if !deleted.Success || deleted.ID != p.ID {
		t.Errorf("unexpected delete output: %+v", deleted)
	}

	// Delete again
	_, err = s.handleDeletePreset(ctx, toolRequest(t, DeletePresetInput{Preset: "Fiscal Q"}))
	if err == nil || !strings.Contains(err.Error(), "preset not found") {
		t.Errorf("expected 'preset not found' error, got %v", err)
	}
}

func TestHandleSavePreset_MissingName(t *testing.T) {
	s, _ := setupTestServer(t)

	_, err := s.handleSavePreset(context.Background(), toolRequest(t, SavePresetInput{
		RangeInput: RangeInput{Spec: strPtr("today")},
	}))
	if err == nil || err.Error() != "name is required" {
		t.Errorf("expected 'name is required', got %v", err)
	}
}

// Selection

func TestSelectionTools(t *testing.T) {
	s, _ := setupTestServer(t)
	ctx := context.Background()

	result, err := s.handleGetSelection(ctx, toolRequest(t, struct{}{}))
	if err != nil {
		t.Fatalf("get_selection failed: %v", err)
	}
	var sel SelectionOutput
	decodeResult(t, result, &sel)
	if sel.Stored {
		t.Error("fresh store should report stored=false")
	}
	if sel.Range.Spec != "past-7" {
		t.Errorf("expected default past-7, got %q", sel.Range.Spec)
	}

	if _, err := s.handleSetSelection(ctx, toolRequest(t, RangeInput{Spec: strPtr("yesterday")})); err != nil {
		t.Fatalf("set_selection failed: %v", err)
	}

	result, err = s.handleGetSelection(ctx, toolRequest(t, struct{}{}))
	if err != nil {
		t.Fatalf("get_selection failed: %v", err)
	}
	decodeResult(t, result, &sel)
	if !sel.Stored || sel.Range.Spec != "yesterday" {
		t.Errorf("expected stored yesterday, got %+v", sel)
	}
	checkBounds(t, sel.Range, utc(2015, 6, 9, 0, 0, 0), utc(2015, 6, 9, 23, 59, 59), 1)
}
