// ABOUTME: Equality, stepping, and clamping of date ranges
// ABOUTME: Operations that need a calendar and clock go through Resolver

package daterange

import (
	"time"

	"github.com/harper/daterange/internal/timeutil"
)

// Equal reports whether a and b denote the same range. Custom ranges are
// compared by their resolved day bounds, so ranges built from different
// times of the same days are equal. Relative ranges compare their
// parameters. Ranges of different kinds are never equal.
func (res *Resolver) Equal(a, b Range) bool {
	switch x := a.(type) {
	case Custom:
		y, ok := b.(Custom)
		if !ok {
			return false
		}
		now := res.Now()
		return res.StartDateAt(x, now).Equal(res.StartDateAt(y, now)) &&
			res.EndDateAt(x, now).Equal(res.EndDateAt(y, now))
	case PastDays:
		y, ok := b.(PastDays)
		return ok && x == y
	case CalendarUnit:
		y, ok := b.(CalendarUnit)
		return ok && x == y
	default:
		return false
	}
}

// Next is MoveBy(r, 1).
func (res *Resolver) Next(r Range) Range { return res.MoveBy(r, 1) }

// Previous is MoveBy(r, -1).
func (res *Resolver) Previous(r Range) Range { return res.MoveBy(r, -1) }

// MoveBy shifts r by steps lengths of itself. Calendar units move their
// offset. Day-based ranges move by their length in days, and become
// PastDays or Today again when the result ends today.
func (res *Resolver) MoveBy(r Range, steps int) Range {
	if u, ok := r.(CalendarUnit); ok {
		return NewCalendarUnit(u.offset+steps, u.unit, u.hourShift)
	}

	sh := r.HourShift()
	now := res.Now()
	start, end := res.StartDateAt(r, now), res.EndDateAt(r, now)

	days, err := res.cal.DaysBetween(end, start)
	if err != nil {
		res.logger.Debug("day count failed while moving range", "range", r, "err", err)
		days = 0
	}
	length := days + 1

	newStart, err := res.cal.Add(start, length*steps, timeutil.Day)
	if err != nil {
		newStart = start
	}
	newEnd, err := res.cal.Add(end, length*steps, timeutil.Day)
	if err != nil {
		newEnd = end
	}

	today := Today(sh)
	if newEnd.Equal(res.EndDateAt(today, now)) {
		if newStart.Equal(res.StartDateAt(today, now)) {
			return today
		}
		return NewPastDays(length-1, sh)
	}
	return NewCustom(newStart, newEnd, sh)
}

// RestrictTo clamps r's resolved bounds into [day start of minDate, day end
// of maxDate]. Nil bounds are open. When clamping changes anything the result is
// a Custom range with r's hour shift; otherwise r is returned unchanged.
func (res *Resolver) RestrictTo(r Range, minDate, maxDate *time.Time) Range {
	start, end := res.Bounds(r)
	adjStart, adjEnd := start, end

	if minDate != nil {
		if lo, err := res.cal.Beginning(*minDate, timeutil.Day); err == nil {
			adjStart = later(lo, adjStart)
			adjEnd = later(lo, adjEnd)
		}
	}
	if maxDate != nil {
		if hi, err := res.cal.End(*maxDate, timeutil.Day); err == nil {
			adjStart = earlier(hi, adjStart)
			adjEnd = earlier(hi, adjEnd)
		}
	}

	if !adjStart.Equal(start) || !adjEnd.Equal(end) {
		return NewCustom(adjStart, adjEnd, r.HourShift())
	}
	return r
}

func later(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

func earlier(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}
