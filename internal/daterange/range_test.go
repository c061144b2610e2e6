// ABOUTME: Tests for date range resolution, equality, stepping, and clamping
// ABOUTME: Uses a fixed clock and explicit zones so results are deterministic

package daterange

import (
	"fmt"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/daterange/internal/timeutil"
)

func date(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func datetime(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func assertTime(t *testing.T, want, got time.Time, msgAndArgs ...interface{}) {
	t.Helper()
	assert.WithinDuration(t, want, got, 0, msgAndArgs...)
}

func resolverAt(now time.Time) *Resolver {
	return NewResolver(timeutil.NewCalendar(time.UTC), WithClock(FixedClock(now)))
}

func TestCustomBounds(t *testing.T) {
	res := resolverAt(datetime("2015-07-01 10:00:00"))
	r := NewCustom(date("2015-06-15"), date("2015-06-17"), 0)

	start, end := res.Bounds(r)
	assertTime(t, date("2015-06-15"), start)
	assertTime(t, datetime("2015-06-17 23:59:59"), end)
}

func TestCustomBoundsIgnoreTimeOfDay(t *testing.T) {
	res := resolverAt(datetime("2015-07-01 10:00:00"))
	r := NewCustom(datetime("2015-06-15 13:14:15"), datetime("2015-06-17 01:02:03"), 0)

	start, end := res.Bounds(r)
	assertTime(t, date("2015-06-15"), start)
	assertTime(t, datetime("2015-06-17 23:59:59"), end)
}

func TestCustomSwapsReversedBounds(t *testing.T) {
	r := NewCustom(date("2015-06-17"), date("2015-06-15"), 0)
	assertTime(t, date("2015-06-15"), r.Start())
	assertTime(t, date("2015-06-17"), r.End())
}

func TestPastDaysBounds(t *testing.T) {
	res := resolverAt(datetime("2015-06-10 15:30:00"))

	start, end := res.Bounds(NewPastDays(30, 0))
	assertTime(t, date("2015-05-11"), start)
	assertTime(t, datetime("2015-06-10 23:59:59"), end)

	start, end = res.Bounds(NewPastDays(0, 0))
	assertTime(t, date("2015-06-10"), start)
	assertTime(t, datetime("2015-06-10 23:59:59"), end)
}

func TestNegativePastDaysClamped(t *testing.T) {
	assert.Equal(t, 0, NewPastDays(-4, 0).Days())
}

func TestCalendarUnitQuarterBounds(t *testing.T) {
	res := resolverAt(datetime("2015-08-20 09:00:00"))

	tests := []struct {
		offset    int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{0, date("2015-07-01"), datetime("2015-09-30 23:59:59")},
		{-1, date("2015-04-01"), datetime("2015-06-30 23:59:59")},
		{1, date("2015-10-01"), datetime("2015-12-31 23:59:59")},
		{-7, date("2013-10-01"), datetime("2013-12-31 23:59:59")},
	}

	for _, tt := range tests {
		start, end := res.Bounds(NewCalendarUnit(tt.offset, timeutil.Quarter, 0))
		assertTime(t, tt.wantStart, start, "start for offset %d", tt.offset)
		assertTime(t, tt.wantEnd, end, "end for offset %d", tt.offset)
	}
}

func TestCalendarUnitMonthFromMonthEnd(t *testing.T) {
	// March 31 minus one month must still resolve to February, not March.
	res := resolverAt(datetime("2015-03-31 12:00:00"))

	start, end := res.Bounds(NewCalendarUnit(-1, timeutil.Month, 0))
	assertTime(t, date("2015-02-01"), start)
	assertTime(t, datetime("2015-02-28 23:59:59"), end)
}

func TestCalendarUnitWeek(t *testing.T) {
	res := resolverAt(datetime("2015-06-03 12:00:00"))

	start, end := res.Bounds(NewCalendarUnit(-1, timeutil.WeekOfYear, 0))
	assertTime(t, date("2015-05-24"), start)
	assertTime(t, datetime("2015-05-30 23:59:59"), end)
}

func TestCalendarUnitSubDay(t *testing.T) {
	res := resolverAt(datetime("2015-06-03 12:34:56"))

	start, end := res.Bounds(NewCalendarUnit(-1, timeutil.Hour, 5))
	assertTime(t, datetime("2015-06-03 11:00:00"), start)
	assertTime(t, datetime("2015-06-03 11:59:59"), end)
	assert.False(t, end.Before(start))
}

func TestResolutionFallsBackToNow(t *testing.T) {
	now := datetime("2015-06-03 12:00:00")
	res := resolverAt(now)

	start, end := res.Bounds(NewCalendarUnit(1, timeutil.Era, 0))
	assertTime(t, now, start)
	assertTime(t, now, end)
}

func TestHourShiftDoesNotAffectCustom(t *testing.T) {
	r := NewCustom(datetime("2015-06-01 12:00:00"), datetime("2015-06-03 12:00:00"), 5)

	for _, now := range []time.Time{datetime("2015-06-01 04:59:59"), datetime("2015-06-01 05:00:00")} {
		res := resolverAt(now)
		start, end := res.Bounds(r)
		assertTime(t, date("2015-06-01"), start, "start at %v", now)
		assertTime(t, datetime("2015-06-03 23:59:59"), end, "end at %v", now)
	}
}

func TestHourShiftMovesToday(t *testing.T) {
	before := resolverAt(datetime("2015-06-01 04:59:59"))
	start, end := before.Bounds(NewPastDays(0, 5))
	assertTime(t, date("2015-05-31"), start)
	assertTime(t, datetime("2015-05-31 23:59:59"), end)

	after := resolverAt(datetime("2015-06-01 05:00:00"))
	start, end = after.Bounds(NewPastDays(0, 5))
	assertTime(t, date("2015-06-01"), start)
	assertTime(t, datetime("2015-06-01 23:59:59"), end)

	start, end = before.Bounds(Today(5))
	assertTime(t, date("2015-05-31"), start)
	assertTime(t, datetime("2015-05-31 23:59:59"), end)
}

func TestHourShiftMonthBoundary(t *testing.T) {
	res := resolverAt(datetime("2015-06-01 03:00:00"))

	start, end := res.Bounds(NewCalendarUnit(0, timeutil.Month, 5))
	assertTime(t, date("2015-05-01"), start)
	assertTime(t, datetime("2015-05-31 23:59:59"), end)
}

func TestBoundsInDSTZone(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	res := NewResolver(timeutil.NewCalendar(berlin),
		WithClock(FixedClock(time.Date(2015, time.October, 27, 12, 0, 0, 0, berlin))))

	start, end := res.Bounds(NewPastDays(7, 0))
	assertTime(t, time.Date(2015, time.October, 20, 0, 0, 0, 0, berlin), start)
	assertTime(t, time.Date(2015, time.October, 27, 23, 59, 59, 0, berlin), end)
}

func zonedResolver(t *testing.T, zone string, now string) (*Resolver, *time.Location) {
	t.Helper()
	loc, err := time.LoadLocation(zone)
	require.NoError(t, err)
	n, err := time.ParseInLocation("2006-01-02 15:04", now, loc)
	require.NoError(t, err)
	return NewResolver(timeutil.NewCalendar(loc), WithClock(FixedClock(n))), loc
}

func TestBoundsOnSkippedMidnight(t *testing.T) {
	res, loc := zonedResolver(t, "America/Sao_Paulo", "2018-11-04 10:00")

	start, end := res.Bounds(Today(0))
	assertTime(t, time.Date(2018, time.November, 4, 1, 0, 0, 0, loc), start)
	assertTime(t, time.Date(2018, time.November, 4, 23, 59, 59, 0, loc), end)

	start, end = res.Bounds(NewPastDays(7, 0))
	assertTime(t, time.Date(2018, time.October, 28, 0, 0, 0, 0, loc), start)
	assertTime(t, time.Date(2018, time.November, 4, 23, 59, 59, 0, loc), end)
}

func TestBoundsWhenShiftHourIsSkipped(t *testing.T) {
	res, loc := zonedResolver(t, "Europe/Berlin", "2015-03-29 10:00")

	start, end := res.Bounds(NewCalendarUnit(0, timeutil.Month, 2))
	assertTime(t, time.Date(2015, time.March, 1, 0, 0, 0, 0, loc), start)
	assertTime(t, time.Date(2015, time.March, 31, 23, 59, 59, 0, loc), end)

	start, end = res.Bounds(Today(2))
	assertTime(t, time.Date(2015, time.March, 29, 0, 0, 0, 0, loc), start)
	assertTime(t, time.Date(2015, time.March, 29, 23, 59, 59, 0, loc), end)

	r := res.MoveBy(res.MoveBy(NewPastDays(7, 2), -1), 1)
	assert.Equal(t, NewPastDays(7, 2), r)
}

func TestWeekYearBounds(t *testing.T) {
	res := resolverAt(datetime("2015-06-03 10:00:00"))

	tests := []struct {
		offset int
		start  string
		end    string
	}{
		{-1, "2013-12-29 00:00:00", "2014-12-27 23:59:59"},
		{0, "2014-12-28 00:00:00", "2015-12-26 23:59:59"},
		{1, "2015-12-27 00:00:00", "2016-12-31 23:59:59"},
	}
	for _, tt := range tests {
		start, end := res.Bounds(NewCalendarUnit(tt.offset, timeutil.YearForWeekOfYear, 0))
		assertTime(t, datetime(tt.start), start, "offset %d start", tt.offset)
		assertTime(t, datetime(tt.end), end, "offset %d end", tt.offset)
	}
}

func TestBoundsOrderedOnTransitionDays(t *testing.T) {
	days := []struct {
		zone string
		day  string
	}{
		{"America/Sao_Paulo", "2018-11-04"},
		{"America/Sao_Paulo", "2018-02-17"},
		{"Europe/Berlin", "2015-03-29"},
		{"Europe/Berlin", "2015-10-25"},
	}
	units := []timeutil.Unit{
		timeutil.Day, timeutil.WeekOfYear, timeutil.Month,
		timeutil.Quarter, timeutil.Year, timeutil.YearForWeekOfYear,
	}

	for _, d := range days {
		for _, clock := range []string{"01:30", "10:00", "23:30"} {
			res, loc := zonedResolver(t, d.zone, d.day+" "+clock)
			for _, sh := range []int{0, 2, 5} {
				ranges := append(FlatPresets(sh), NewPastDays(0, sh))
				for _, u := range units {
					for _, off := range []int{-1, 0, 1} {
						ranges = append(ranges, NewCalendarUnit(off, u, sh))
					}
				}
				for _, r := range ranges {
					start, end := res.Bounds(r)
					label := fmt.Sprintf("%s %s %s shift %d %v", d.zone, d.day, clock, sh, r)
					assert.False(t, start.After(end), "%s: start %v after end %v", label, start, end)
					hh, mm, ss := end.In(loc).Clock()
					assert.Equal(t, [3]int{23, 59, 59}, [3]int{hh, mm, ss}, "%s: end %v", label, end)
				}
			}
		}
	}
}

func TestEqual(t *testing.T) {
	res := resolverAt(datetime("2015-07-01 10:00:00"))
	start, end := date("2015-06-15"), date("2015-06-17")

	assert.True(t, res.Equal(NewCustom(start, end, 0), NewCustom(start, end, 0)))
	assert.True(t, res.Equal(
		NewCustom(start.Add(time.Hour), end.Add(time.Hour), 0),
		NewCustom(start, end, 0)))
	assert.False(t, res.Equal(NewCustom(date("2015-06-14"), end, 0), NewCustom(start, end, 0)))

	assert.True(t, res.Equal(NewPastDays(7, 0), NewPastDays(7, 0)))
	assert.False(t, res.Equal(NewPastDays(7, 0), NewPastDays(8, 0)))
	assert.False(t, res.Equal(NewPastDays(7, 0), NewPastDays(7, 5)))

	assert.True(t, res.Equal(NewCalendarUnit(7, timeutil.Quarter, 0), NewCalendarUnit(7, timeutil.Quarter, 0)))
	assert.False(t, res.Equal(NewCalendarUnit(8, timeutil.Quarter, 0), NewCalendarUnit(7, timeutil.Quarter, 0)))
	assert.False(t, res.Equal(NewCalendarUnit(7, timeutil.Day, 0), NewCalendarUnit(7, timeutil.Quarter, 0)))
	assert.False(t, res.Equal(NewCalendarUnit(1, timeutil.WeekOfYear, 0), NewCalendarUnit(7, timeutil.Day, 0)))

	// Different kinds never compare equal, even when they resolve alike.
	assert.False(t, res.Equal(NewPastDays(0, 0), Today(0)))
}

func TestMoveBy(t *testing.T) {
	now := datetime("2015-07-01 10:00:00")
	res := resolverAt(now)

	moved := res.MoveBy(NewCustom(date("2015-06-15"), date("2015-06-17"), 0), -2)
	assert.True(t, res.Equal(NewCustom(date("2015-06-09"), date("2015-06-11"), 0), moved), "got %v", moved)

	moved = res.MoveBy(NewPastDays(30, 0), -2)
	want := NewCustom(now.AddDate(0, 0, -92), now.AddDate(0, 0, -62), 0)
	assert.True(t, res.Equal(want, moved), "got %v", moved)

	moved = res.MoveBy(NewCalendarUnit(1, timeutil.Quarter, 0), -2)
	assert.Equal(t, NewCalendarUnit(-1, timeutil.Quarter, 0), moved)
}

func TestMoveBackToTodayBecomesRelative(t *testing.T) {
	res := resolverAt(datetime("2015-07-01 10:00:00"))

	r := res.MoveBy(res.MoveBy(NewPastDays(30, 0), -2), 2)
	assert.Equal(t, NewPastDays(30, 0), r)

	r = res.MoveBy(res.MoveBy(NewPastDays(0, 0), -2), 2)
	assert.Equal(t, Today(0), r)
}

func TestMoveKeepsHourShift(t *testing.T) {
	res := resolverAt(datetime("2015-07-01 03:00:00"))

	r := res.Next(res.Previous(NewPastDays(6, 5)))
	assert.Equal(t, NewPastDays(6, 5), r)

	prev := res.Previous(NewCustom(date("2015-06-15"), date("2015-06-17"), 5))
	assert.Equal(t, 5, prev.HourShift())
}

func TestNextPrevious(t *testing.T) {
	res := resolverAt(datetime("2015-07-01 10:00:00"))
	assert.Equal(t, NewCalendarUnit(-1, timeutil.Month, 0), res.Previous(NewCalendarUnit(0, timeutil.Month, 0)))
	assert.Equal(t, NewCalendarUnit(1, timeutil.Month, 0), res.Next(NewCalendarUnit(0, timeutil.Month, 0)))
}

func TestRestrictTo(t *testing.T) {
	res := resolverAt(datetime("2015-07-10 10:00:00"))
	r := NewCustom(date("2015-06-15"), date("2015-06-17"), 0)
	ptr := func(s string) *time.Time { d := date(s); return &d }

	same := res.RestrictTo(r, ptr("2015-06-01"), ptr("2015-07-01"))
	assert.Equal(t, r, same)

	tests := []struct {
		name     string
		min, max string
		want     Range
	}{
		{"min inside", "2015-06-16", "2015-07-01", NewCustom(date("2015-06-16"), date("2015-06-17"), 0)},
		{"min after", "2015-06-18", "2015-07-01", NewCustom(date("2015-06-18"), date("2015-06-18"), 0)},
		{"max inside", "2015-06-01", "2015-06-16", NewCustom(date("2015-06-15"), date("2015-06-16"), 0)},
		{"max before", "2015-06-01", "2015-06-14", NewCustom(date("2015-06-14"), date("2015-06-14"), 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := res.RestrictTo(r, ptr(tt.min), ptr(tt.max))
			_, ok := got.(Custom)
			require.True(t, ok, "expected a custom range, got %T", got)
			assert.True(t, res.Equal(tt.want, got), "got %v", got)
		})
	}
}

func TestRestrictToDegradesRelative(t *testing.T) {
	res := resolverAt(datetime("2015-07-10 10:00:00"))
	maxDate := date("2015-07-05")

	got := res.RestrictTo(NewPastDays(30, 3), nil, &maxDate)
	c, ok := got.(Custom)
	require.True(t, ok)
	assert.Equal(t, 3, c.HourShift())
	assertTime(t, datetime("2015-07-05 23:59:59"), res.EndDate(c))

	unchanged := res.RestrictTo(NewPastDays(30, 3), nil, nil)
	assert.Equal(t, NewPastDays(30, 3), unchanged)
}

func TestWithHourShift(t *testing.T) {
	assert.Equal(t, 4, NewPastDays(7, 0).WithHourShift(4).HourShift())
	assert.Equal(t, 4, NewCalendarUnit(0, timeutil.Year, 0).WithHourShift(4).HourShift())
	assert.Equal(t, 4, NewCustom(date("2015-06-15"), date("2015-06-17"), 0).WithHourShift(4).HourShift())
}
