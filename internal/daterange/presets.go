// ABOUTME: Built-in preset menu of common relative ranges
// ABOUTME: Two columns; a nil entry marks a separator

package daterange

import "github.com/harper/daterange/internal/timeutil"

// Presets returns the built-in menu: past N days in the first column, the
// current and previous calendar units in the second.
func Presets(hourShift int) [][]Range {
	return [][]Range{
		{
			NewPastDays(7, hourShift),
			NewPastDays(15, hourShift),
			NewPastDays(30, hourShift),
			NewPastDays(90, hourShift),
			NewPastDays(365, hourShift),
		},
		{
			NewCalendarUnit(0, timeutil.Day, hourShift),
			NewCalendarUnit(0, timeutil.WeekOfYear, hourShift),
			NewCalendarUnit(0, timeutil.Month, hourShift),
			NewCalendarUnit(0, timeutil.Quarter, hourShift),
			NewCalendarUnit(0, timeutil.Year, hourShift),
			nil,
			NewCalendarUnit(-1, timeutil.Day, hourShift),
			NewCalendarUnit(-1, timeutil.WeekOfYear, hourShift),
			NewCalendarUnit(-1, timeutil.Month, hourShift),
		},
	}
}

// FlatPresets returns Presets without separators.
func FlatPresets(hourShift int) []Range {
	var out []Range
	for _, col := range Presets(hourShift) {
		for _, r := range col {
			if r != nil {
				out = append(out, r)
			}
		}
	}
	return out
}
