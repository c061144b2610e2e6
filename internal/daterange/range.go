// ABOUTME: DateRange value type: custom bounds, past N days, or an offset calendar unit
// ABOUTME: Immutable values; resolution against "now" lives in Resolver

package daterange

import (
	"fmt"
	"time"

	"github.com/harper/daterange/internal/timeutil"
)

// Range is a date range that resolves to concrete bounds against a
// reference instant. The implementations are Custom, PastDays and
// CalendarUnit; the set is closed.
type Range interface {
	// HourShift is the hour at which days begin for this range.
	HourShift() int
	// WithHourShift returns a copy using a different day start hour.
	WithHourShift(h int) Range
	// Title returns a menu title, or false if none is defined.
	Title() (string, bool)
	// ShortTitle is a shortened Title for compact controls.
	ShortTitle() (string, bool)
	// Record returns the serialized form.
	Record() Record
	String() string

	isRange()
}

// Custom is a range with explicit bounds, widened to whole days on
// resolution.
type Custom struct {
	start     time.Time
	end       time.Time
	hourShift int
}

// NewCustom returns a custom range. Reversed bounds are swapped.
func NewCustom(start, end time.Time, hourShift int) Custom {
	if end.Before(start) {
		start, end = end, start
	}
	return Custom{start: start, end: end, hourShift: hourShift}
}

// Start returns the stored start instant.
func (c Custom) Start() time.Time { return c.start }

// End returns the stored end instant.
func (c Custom) End() time.Time { return c.end }

func (c Custom) HourShift() int { return c.hourShift }

func (c Custom) WithHourShift(h int) Range {
	c.hourShift = h
	return c
}

func (c Custom) String() string {
	return fmt.Sprintf("custom(%s..%s, shift %d)",
		c.start.Format(time.RFC3339), c.end.Format(time.RFC3339), c.hourShift)
}

func (Custom) isRange() {}

// PastDays is the N days before today plus today itself.
type PastDays struct {
	days      int
	hourShift int
}

// NewPastDays returns a past-days range. Negative counts become zero.
func NewPastDays(days, hourShift int) PastDays {
	if days < 0 {
		days = 0
	}
	return PastDays{days: days, hourShift: hourShift}
}

// Days returns the number of days before today covered by the range.
func (p PastDays) Days() int { return p.days }

func (p PastDays) HourShift() int { return p.hourShift }

func (p PastDays) WithHourShift(h int) Range {
	p.hourShift = h
	return p
}

func (p PastDays) String() string {
	return fmt.Sprintf("past(%d days, shift %d)", p.days, p.hourShift)
}

func (PastDays) isRange() {}

// CalendarUnit spans the unit that is offset units away from the one
// holding now: 0 is the current unit, -1 the previous one.
type CalendarUnit struct {
	offset    int
	unit      timeutil.Unit
	hourShift int
}

// NewCalendarUnit returns an offset calendar unit range.
func NewCalendarUnit(offset int, unit timeutil.Unit, hourShift int) CalendarUnit {
	return CalendarUnit{offset: offset, unit: unit, hourShift: hourShift}
}

// Offset returns the distance from the current unit.
func (u CalendarUnit) Offset() int { return u.offset }

// Unit returns the calendar unit spanned.
func (u CalendarUnit) Unit() timeutil.Unit { return u.unit }

func (u CalendarUnit) HourShift() int { return u.hourShift }

func (u CalendarUnit) WithHourShift(h int) Range {
	u.hourShift = h
	return u
}

func (u CalendarUnit) String() string {
	return fmt.Sprintf("unit(%s %+d, shift %d)", u.unit, u.offset, u.hourShift)
}

func (CalendarUnit) isRange() {}

// Today is CalendarUnit(0, day).
func Today(hourShift int) CalendarUnit {
	return NewCalendarUnit(0, timeutil.Day, hourShift)
}
