// ABOUTME: Hour-shifted day boundaries, for days that begin at e.g. 05:00
// ABOUTME: Shift-aware beginning and end of calendar units

package timeutil

import (
	"fmt"
	"time"
)

// BeginningOfShiftedDay returns the most recent instant at or before t whose
// wall clock reads shift:00. On a day where that hour falls in a DST gap the
// shifted day begins at the first instant after the gap.
func (c *Calendar) BeginningOfShiftedDay(t time.Time, shift int) (time.Time, error) {
	t = t.In(c.loc)
	y, m, d := t.Date()
	s, err := c.shiftHourOn(y, m, d, shift)
	if err != nil {
		return time.Time{}, err
	}
	if !s.After(t) {
		return s, nil
	}
	prev := time.Date(y, m, d-1, 0, 0, 0, 0, time.UTC)
	return c.shiftHourOn(prev.Year(), prev.Month(), prev.Day(), shift)
}

// BeginningShifted returns the beginning of unit for a calendar whose days
// start at shift:00. Units shorter than a day ignore the shift.
func (c *Calendar) BeginningShifted(t time.Time, unit Unit, shift int) (time.Time, error) {
	if !unit.AffectedByHourShift() {
		return c.Beginning(t, unit)
	}
	day, err := c.BeginningOfShiftedDay(t, shift)
	if err != nil {
		return time.Time{}, err
	}
	b, err := c.Beginning(day, unit)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := b.Date()
	return c.shiftHourOn(y, m, d, shift)
}

// EndShifted returns the exclusive end of unit for a shifted calendar: the
// shifted beginning of the following unit.
func (c *Calendar) EndShifted(t time.Time, unit Unit, shift int) (time.Time, error) {
	if !unit.AffectedByHourShift() {
		return c.EndWithOptions(t, unit, EndOptions{Exclusive: true})
	}
	b, err := c.BeginningShifted(t, unit, shift)
	if err != nil {
		return time.Time{}, err
	}
	next, err := c.Add(b, 1, unit)
	if err != nil {
		return time.Time{}, err
	}
	// b may sit past a gap rather than on the shift hour, so re-align.
	return c.BeginningShifted(next, unit, shift)
}

// shiftHourOn returns hour:00 on a civil day, resolving an hour skipped by
// a DST gap forward to the first instant after the gap.
func (c *Calendar) shiftHourOn(y int, m time.Month, d, hour int) (time.Time, error) {
	if hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("hour %d out of range", hour)
	}
	return c.resolveWall(time.Date(y, m, d, hour, 0, 0, 0, time.UTC)), nil
}
