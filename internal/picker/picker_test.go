// ABOUTME: Tests for the headless picker state
// ABOUTME: Covers bounds, stepping, start/end setters, listeners, and persistence

package picker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/daterange/internal/daterange"
	"github.com/harper/daterange/internal/timeutil"
)

func date(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func newPicker(now string, initial daterange.Range) *Picker {
	now = now + " 12:00:00"
	n, err := time.ParseInLocation("2006-01-02 15:04:05", now, time.UTC)
	if err != nil {
		panic(err)
	}
	res := daterange.NewResolver(timeutil.NewCalendar(time.UTC), daterange.WithClock(daterange.FixedClock(n)))
	return New(res, initial)
}

func TestDefaultSelection(t *testing.T) {
	p := newPicker("2015-06-10", nil)
	assert.Equal(t, daterange.NewPastDays(7, 0), p.Range())
	assert.True(t, p.PreviousAllowed())
	assert.True(t, p.NextAllowed())
}

func TestSetRangeReportsChange(t *testing.T) {
	p := newPicker("2015-06-10", nil)

	var seen []daterange.Range
	p.OnChange(func(r daterange.Range) { seen = append(seen, r) })

	assert.False(t, p.SetRange(daterange.NewPastDays(7, 0)))
	assert.True(t, p.SetRange(daterange.NewPastDays(30, 0)))
	require.Len(t, seen, 1)
	assert.Equal(t, daterange.NewPastDays(30, 0), seen[0])
}

func TestSetStartAndEndDate(t *testing.T) {
	p := newPicker("2015-06-30", daterange.NewCustom(date("2015-06-15"), date("2015-06-17"), 0))

	p.SetStartDate(date("2015-06-20"))
	c, ok := p.Range().(daterange.Custom)
	require.True(t, ok)
	assert.True(t, p.StartDate().Equal(date("2015-06-20")))
	assert.True(t, p.EndDate().Equal(date("2015-06-20").Add(24*time.Hour-time.Second)), "end %v", c.End())

	p.SetEndDate(date("2015-06-18"))
	assert.True(t, p.StartDate().Equal(date("2015-06-18")))
	assert.True(t, p.EndDate().Equal(date("2015-06-18").Add(24*time.Hour-time.Second)))

	p.SetEndDate(date("2015-06-25"))
	assert.True(t, p.StartDate().Equal(date("2015-06-18")))
	assert.True(t, p.EndDate().Equal(date("2015-06-25").Add(24*time.Hour-time.Second)))
}

func TestBoundsRestrictSelection(t *testing.T) {
	p := newPicker("2015-06-30", daterange.NewCustom(date("2015-06-15"), date("2015-06-17"), 0))

	minDate := date("2015-06-16")
	p.SetMinDate(&minDate)
	assert.True(t, p.StartDate().Equal(date("2015-06-16")))
	assert.False(t, p.PreviousAllowed())
	assert.True(t, p.NextAllowed())

	maxDate := date("2015-06-17")
	p.SetMaxDate(&maxDate)
	assert.False(t, p.NextAllowed())

	// Stepping forward is clamped to the max day.
	p.Next()
	assert.True(t, p.EndDate().Equal(date("2015-06-17").Add(24*time.Hour-time.Second)))
	assert.False(t, p.NextAllowed())

	p.SetMinDate(nil)
	p.SetMaxDate(nil)
	assert.True(t, p.PreviousAllowed())
	assert.True(t, p.NextAllowed())
}

func TestPreviousNext(t *testing.T) {
	p := newPicker("2015-06-30", daterange.NewCalendarUnit(0, timeutil.Month, 0))

	p.Previous()
	assert.Equal(t, daterange.NewCalendarUnit(-1, timeutil.Month, 0), p.Range())
	assert.Equal(t, "May 2015", p.Label(daterange.ISODate))

	p.Next()
	p.Next()
	assert.Equal(t, daterange.NewCalendarUnit(1, timeutil.Month, 0), p.Range())
}

func TestSelectTodayAndHourShift(t *testing.T) {
	p := newPicker("2015-06-30", nil)

	p.SetHourShift(4)
	assert.Equal(t, daterange.NewPastDays(7, 4), p.Range())

	p.SelectToday()
	assert.Equal(t, daterange.Today(4), p.Range())
	assert.Equal(t, "Today", p.Label(daterange.ISODate))

	p.SelectPreset(daterange.NewCalendarUnit(-1, timeutil.WeekOfYear, 0))
	assert.Equal(t, daterange.NewCalendarUnit(-1, timeutil.WeekOfYear, 4), p.Range())
}

func TestHourShiftReachesCustomSelection(t *testing.T) {
	p := newPicker("2015-06-30", daterange.NewCustom(date("2015-06-10"), date("2015-06-12"), 0))

	var seen []daterange.Range
	p.OnChange(func(r daterange.Range) { seen = append(seen, r) })

	p.SetHourShift(3)
	assert.Equal(t, 3, p.Range().HourShift())
	require.Len(t, seen, 1)
	assert.Equal(t, 3, seen[0].HourShift())

	data, err := p.MarshalState()
	require.NoError(t, err)
	q := newPicker("2015-06-30", nil)
	require.NoError(t, q.LoadState(data))
	assert.Equal(t, 3, q.Range().HourShift())
	assert.Equal(t, p.StartDate(), q.StartDate())
}

func TestStatePersistence(t *testing.T) {
	p := newPicker("2015-06-30", daterange.NewCalendarUnit(-1, timeutil.Quarter, 2))
	data, err := p.MarshalState()
	require.NoError(t, err)

	q := newPicker("2015-06-30", nil)
	require.NoError(t, q.LoadState(data))
	assert.Equal(t, daterange.NewCalendarUnit(-1, timeutil.Quarter, 2), q.Range())

	err = q.LoadState([]byte(`{"case":"Bogus"}`))
	assert.ErrorIs(t, err, daterange.ErrMalformedRecord)
	assert.Equal(t, daterange.NewCalendarUnit(-1, timeutil.Quarter, 2), q.Range())
}

func TestDayChangedNotifies(t *testing.T) {
	p := newPicker("2015-06-30", nil)
	calls := 0
	p.OnChange(func(daterange.Range) { calls++ })
	p.DayChanged()
	assert.Equal(t, 1, calls)
}
