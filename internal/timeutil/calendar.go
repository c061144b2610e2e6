// ABOUTME: Calendar context and unit arithmetic in a fixed location
// ABOUTME: Add, beginning/end of unit, units between, and day-start resolution

package timeutil

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// ErrUnsupportedUnit is returned for units an operation cannot handle.
	ErrUnsupportedUnit = errors.New("unsupported calendar unit")

	// ErrNonexistentTime is returned when a wall-clock time does not exist
	// on the requested day, e.g. inside a DST gap.
	ErrNonexistentTime = errors.New("wall-clock time does not exist")
)

// DayStartReporter is notified when no hour of a day can be resolved. It
// must not panic.
type DayStartReporter interface {
	ReportDayStartFailure(t time.Time, cal *Calendar)
}

// DayStartReporterFunc adapts a function to DayStartReporter.
type DayStartReporterFunc func(t time.Time, cal *Calendar)

// ReportDayStartFailure calls f.
func (f DayStartReporterFunc) ReportDayStartFailure(t time.Time, cal *Calendar) { f(t, cal) }

// Calendar is the context for all unit arithmetic: a location, the first
// day of the week, and the hooks used when zone data turns out unusable.
// A Calendar is immutable once built and safe for concurrent use.
type Calendar struct {
	loc          *time.Location
	firstWeekday time.Weekday
	reporter     DayStartReporter
	fatal        func(error)
	logger       *log.Logger
}

// Option configures a Calendar.
type Option func(*Calendar)

// WithFirstWeekday sets the weekday weeks begin on (default Sunday).
func WithFirstWeekday(d time.Weekday) Option {
	return func(c *Calendar) { c.firstWeekday = d }
}

// WithDayStartReporter installs the hook called before the fatal handler.
func WithDayStartReporter(r DayStartReporter) Option {
	return func(c *Calendar) { c.reporter = r }
}

// WithFatalHandler replaces the default fatal handler, which logs and exits.
func WithFatalHandler(fn func(error)) Option {
	return func(c *Calendar) { c.fatal = fn }
}

// WithLogger sets the logger used for calendar diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Calendar) { c.logger = l }
}

// NewCalendar builds a calendar for loc. A nil loc means time.Local.
func NewCalendar(loc *time.Location, opts ...Option) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	c := &Calendar{
		loc:          loc,
		firstWeekday: time.Sunday,
		logger:       log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.fatal == nil {
		c.fatal = func(err error) {
			log.Fatal("calendar data cannot represent a day start", "err", err)
		}
	}
	return c
}

// Default returns a calendar in the local zone with weeks starting Sunday.
func Default() *Calendar {
	return NewCalendar(time.Local)
}

// Location returns the calendar's zone.
func (c *Calendar) Location() *time.Location { return c.loc }

// FirstWeekday returns the weekday weeks begin on.
func (c *Calendar) FirstWeekday() time.Weekday { return c.firstWeekday }

// String describes the calendar for diagnostics.
func (c *Calendar) String() string {
	return fmt.Sprintf("gregorian(%s, first weekday %s)", c.loc, c.firstWeekday)
}

// Add adds n units to t. Calendar units move the civil date and keep the
// wall clock; a wall time skipped by a DST gap resolves to the first instant
// after the gap. Quarters are added as 3*n months: stepping by whole
// quarters must land on the same day of the target quarter.
func (c *Calendar) Add(t time.Time, n int, unit Unit) (time.Time, error) {
	t = t.In(c.loc)
	wall := civil(t)
	switch unit {
	case Era:
		if n != 0 {
			return time.Time{}, fmt.Errorf("%w: cannot add %d eras", ErrUnsupportedUnit, n)
		}
		return t, nil
	case Year:
		return c.resolveWall(addMonths(wall, 12*n)), nil
	case YearForWeekOfYear:
		return c.resolveWall(c.addWeekYears(wall, n)), nil
	case Quarter:
		return c.resolveWall(addMonths(wall, 3*n)), nil
	case Month:
		return c.resolveWall(addMonths(wall, n)), nil
	case WeekOfYear, WeekOfMonth, WeekdayOrdinal:
		return c.resolveWall(wall.AddDate(0, 0, 7*n)), nil
	case Day, Weekday:
		return c.resolveWall(wall.AddDate(0, 0, n)), nil
	case Hour:
		return t.Add(time.Duration(n) * time.Hour), nil
	case Minute:
		return t.Add(time.Duration(n) * time.Minute), nil
	case Second:
		return t.Add(time.Duration(n) * time.Second), nil
	case Nanosecond:
		return t.Add(time.Duration(n)), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %v", ErrUnsupportedUnit, unit)
	}
}

// civil carries t's wall clock reading in a UTC time, where date
// arithmetic never meets a DST transition.
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// resolveWall maps a wall clock reading produced by civil back onto the
// calendar's zone. A reading skipped by a DST gap resolves to the
// transition instant, the first one that exists after it.
func (c *Calendar) resolveWall(w time.Time) time.Time {
	r := time.Date(w.Year(), w.Month(), w.Day(), w.Hour(), w.Minute(), w.Second(), w.Nanosecond(), c.loc)
	got := civil(r)
	if got.Equal(w) {
		return r
	}
	// time.Date picked one side of the gap; the bound of that side's zone
	// facing the gap is the transition.
	start, end := r.ZoneBounds()
	if got.Before(w) {
		if !end.IsZero() {
			return end.In(c.loc)
		}
	} else if !start.IsZero() {
		return start.In(c.loc)
	}
	return r
}

// weekYearStart returns the civil date the week-year holding d begins on.
// Week 1 is the week holding January 1, so a week belongs to the year its
// last day falls in.
func (c *Calendar) weekYearStart(d time.Time) time.Time {
	y, m, dd := d.Date()
	weekStart := time.Date(y, m, dd-c.weekdayIndex(d.Weekday()), 0, 0, 0, 0, time.UTC)
	wy := weekStart.AddDate(0, 0, 6).Year()
	jan1 := time.Date(wy, time.January, 1, 0, 0, 0, 0, time.UTC)
	return jan1.AddDate(0, 0, -c.weekdayIndex(jan1.Weekday()))
}

// nextWeekYearStart steps from one week-year start to the next. Week-years
// hold 52 or 53 weeks.
func (c *Calendar) nextWeekYearStart(start time.Time) time.Time {
	next := start.AddDate(0, 0, 52*7)
	if c.weekYearStart(next).Equal(start) {
		next = next.AddDate(0, 0, 7)
	}
	return next
}

// addWeekYears moves a civil reading by n week-years, keeping its day
// offset into the week-year. The offset is clamped when the target
// week-year is one week shorter.
func (c *Calendar) addWeekYears(wall time.Time, n int) time.Time {
	y, m, d := wall.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	start := c.weekYearStart(date)
	offset := civilDays(date, start)
	for ; n > 0; n-- {
		start = c.nextWeekYearStart(start)
	}
	for ; n < 0; n++ {
		start = c.weekYearStart(start.AddDate(0, 0, -1))
	}
	if last := civilDays(c.nextWeekYearStart(start), start) - 1; offset > last {
		offset = last
	}
	hh, mm, ss := wall.Clock()
	return time.Date(start.Year(), start.Month(), start.Day()+offset, hh, mm, ss, wall.Nanosecond(), time.UTC)
}

// addMonths moves t by months, clamping the day to the target month's
// length so Jan 31 + 1 month is Feb 28 rather than Mar 3.
func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Beginning returns the first instant of the unit-sized interval holding t.
func (c *Calendar) Beginning(t time.Time, unit Unit) (time.Time, error) {
	t = t.In(c.loc)
	y, m, d := t.Date()
	switch unit {
	case Era:
		if y < 1 {
			return time.Time{}, fmt.Errorf("%w: era before year 1", ErrUnsupportedUnit)
		}
		return c.firstHourOf(1, time.January, 1)
	case Year:
		return c.firstHourOf(y, time.January, 1)
	case YearForWeekOfYear:
		start := c.weekYearStart(t)
		return c.firstHourOf(start.Year(), start.Month(), start.Day())
	case Quarter:
		return c.firstHourOf(y, (m-1)/3*3+1, 1)
	case Month:
		return c.firstHourOf(y, m, 1)
	case WeekOfYear, WeekOfMonth:
		return c.firstHourOf(y, m, d-c.weekdayIndex(t.Weekday()))
	case Day, Weekday, WeekdayOrdinal:
		return c.firstHourOf(y, m, d)
	case Hour:
		return t.Add(-time.Duration(t.Minute())*time.Minute -
			time.Duration(t.Second())*time.Second -
			time.Duration(t.Nanosecond())), nil
	case Minute:
		return t.Add(-time.Duration(t.Second())*time.Second - time.Duration(t.Nanosecond())), nil
	case Second:
		return t.Add(-time.Duration(t.Nanosecond())), nil
	case Nanosecond:
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("%w: %v", ErrUnsupportedUnit, unit)
	}
}

// weekdayIndex is the position of wd within a week starting on the
// calendar's first weekday.
func (c *Calendar) weekdayIndex(wd time.Weekday) int {
	return (int(wd) - int(c.firstWeekday) + 7) % 7
}

// EndOptions tune End. The zero value yields the inclusive end: one second
// before the next unit begins.
type EndOptions struct {
	// Exclusive returns the next unit's first instant instead.
	Exclusive bool
	// StayAtBoundary, together with Exclusive, returns t itself when t is
	// already the first instant of its unit.
	StayAtBoundary bool
}

// End returns the last second of the unit-sized interval holding t.
func (c *Calendar) End(t time.Time, unit Unit) (time.Time, error) {
	return c.EndWithOptions(t, unit, EndOptions{})
}

// EndWithOptions is End with explicit boundary handling.
func (c *Calendar) EndWithOptions(t time.Time, unit Unit, opts EndOptions) (time.Time, error) {
	start, err := c.Beginning(t, unit)
	if err != nil {
		return time.Time{}, err
	}
	if start.Equal(t) && opts.Exclusive && opts.StayAtBoundary {
		return t, nil
	}
	next, err := c.Add(start, 1, unit)
	if err != nil {
		return time.Time{}, err
	}
	next, err = c.Beginning(next, unit)
	if err != nil {
		return time.Time{}, err
	}
	if !opts.Exclusive {
		next = next.Add(-time.Second)
	}
	return next, nil
}

// UnitsBetween counts whole units from the start of earlier's unit to the
// start of later's unit. Day-based units are counted on civil dates, so a
// 23 or 25 hour DST day still counts as one.
func (c *Calendar) UnitsBetween(later, earlier time.Time, unit Unit) (int, error) {
	from, err := c.Beginning(earlier, unit)
	if err != nil {
		return 0, err
	}
	to, err := c.Beginning(later, unit)
	if err != nil {
		return 0, err
	}
	switch unit {
	case Era:
		return 0, nil
	case Year:
		return monthsBetween(to, from) / 12, nil
	case YearForWeekOfYear:
		// Week-year starts drift between late December and January 1, so
		// count the years their first full weeks end in.
		return to.AddDate(0, 0, 6).Year() - from.AddDate(0, 0, 6).Year(), nil
	case Quarter:
		return monthsBetween(to, from) / 3, nil
	case Month:
		return monthsBetween(to, from), nil
	case WeekOfYear, WeekOfMonth, WeekdayOrdinal:
		return civilDays(to, from) / 7, nil
	case Day, Weekday:
		return civilDays(to, from), nil
	case Hour:
		return int(to.Sub(from) / time.Hour), nil
	case Minute:
		return int(to.Sub(from) / time.Minute), nil
	case Second:
		return int(to.Sub(from) / time.Second), nil
	case Nanosecond:
		return int(to.Sub(from)), nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedUnit, unit)
	}
}

// DaysBetween is UnitsBetween for days.
func (c *Calendar) DaysBetween(later, earlier time.Time) (int, error) {
	return c.UnitsBetween(later, earlier, Day)
}

func monthsBetween(to, from time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

func civilDays(to, from time.Time) int {
	ty, tm, td := to.Date()
	fy, fm, fd := from.Date()
	a := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	b := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	return int(a.Sub(b).Hours() / 24)
}

// SettingHour returns hour:00:00 on t's civil day.
func (c *Calendar) SettingHour(t time.Time, hour int) (time.Time, error) {
	y, m, d := t.In(c.loc).Date()
	return c.hourOn(y, m, d, hour)
}

func (c *Calendar) hourOn(y int, m time.Month, d, hour int) (time.Time, error) {
	if hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("hour %d out of range", hour)
	}
	r := time.Date(y, m, d, hour, 0, 0, 0, c.loc)
	// time.Date normalises both overflowing days and DST gaps; only accept
	// results that kept the requested civil day and hour.
	want := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	ry, rm, rd := r.Date()
	if ry != want.Year() || rm != want.Month() || rd != want.Day() || r.Hour() != hour {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d %02d:00 in %s",
			ErrNonexistentTime, want.Year(), want.Month(), want.Day(), hour, c.loc)
	}
	return r, nil
}

// firstHourOf returns the first whole hour that exists on the given day.
func (c *Calendar) firstHourOf(y int, m time.Month, d int) (time.Time, error) {
	var lastErr error
	for h := 0; h < 24; h++ {
		r, err := c.hourOn(y, m, d, h)
		if err == nil {
			return r, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// DayStart returns the first existing hour of t's day. If the zone data
// cannot represent any hour of that day the reporter is notified and the
// fatal handler runs; no date range built from such a day can be trusted.
func (c *Calendar) DayStart(t time.Time) time.Time {
	y, m, d := t.In(c.loc).Date()
	return c.dayStartOn(y, m, d, t)
}

// dayStartOn resolves the start of a civil day. t is the instant reported
// when resolution fails and the value returned if the fatal handler does.
func (c *Calendar) dayStartOn(y int, m time.Month, d int, t time.Time) time.Time {
	r, err := c.firstHourOf(y, m, d)
	if err == nil {
		return r
	}
	if c.reporter != nil {
		c.reporter.ReportDayStartFailure(t, c)
	}
	c.logger.Error("no hour of day resolves",
		"date", t,
		"unix", t.Unix(),
		"calendar", c.String(),
		"zone", c.loc.String(),
		"err", err)
	c.fatal(fmt.Errorf("day start for %s in %s: %w", t.Format(time.RFC3339), c.loc, err))
	return t
}
