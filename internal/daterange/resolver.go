// ABOUTME: Resolves date ranges to concrete start and end instants
// ABOUTME: Ordered fallback candidates keep resolution total, ending at "now"

package daterange

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harper/daterange/internal/timeutil"
)

// Clock supplies the reference instant ranges are resolved against.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// Resolver binds a calendar and a clock. It is immutable and safe for
// concurrent use.
type Resolver struct {
	cal    *timeutil.Calendar
	clock  Clock
	logger *log.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithClock sets the clock (default SystemClock).
func WithClock(c Clock) ResolverOption {
	return func(r *Resolver) { r.clock = c }
}

// WithLogger sets the logger used for resolution diagnostics.
func WithLogger(l *log.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = l }
}

// NewResolver returns a resolver. A nil calendar means timeutil.Default().
func NewResolver(cal *timeutil.Calendar, opts ...ResolverOption) *Resolver {
	if cal == nil {
		cal = timeutil.Default()
	}
	r := &Resolver{
		cal:    cal,
		clock:  SystemClock{},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Calendar returns the resolver's calendar.
func (res *Resolver) Calendar() *timeutil.Calendar { return res.cal }

// Now returns the clock's instant in the calendar's location.
func (res *Resolver) Now() time.Time {
	return res.clock.Now().In(res.cal.Location())
}

// StartDate resolves the start of r against the clock.
func (res *Resolver) StartDate(r Range) time.Time { return res.StartDateAt(r, res.Now()) }

// EndDate resolves the inclusive end of r against the clock.
func (res *Resolver) EndDate(r Range) time.Time { return res.EndDateAt(r, res.Now()) }

// Bounds returns StartDate and EndDate for a single reading of the clock.
func (res *Resolver) Bounds(r Range) (time.Time, time.Time) {
	now := res.Now()
	return res.StartDateAt(r, now), res.EndDateAt(r, now)
}

// step is one stage of a resolution pipeline.
type step func(time.Time) (time.Time, error)

// candidate is one complete way of computing a bound.
type candidate func() (time.Time, error)

func (res *Resolver) pipe(from time.Time, steps ...step) candidate {
	return func() (time.Time, error) {
		t := from
		for _, s := range steps {
			var err error
			if t, err = s(t); err != nil {
				return time.Time{}, err
			}
		}
		return t, nil
	}
}

// tryInOrder returns the first candidate that succeeds, or now.
func (res *Resolver) tryInOrder(now time.Time, what string, candidates ...candidate) time.Time {
	for i, c := range candidates {
		t, err := c()
		if err == nil {
			return t
		}
		res.logger.Debug("range resolution candidate failed", "bound", what, "candidate", i, "err", err)
	}
	res.logger.Debug("range resolution fell back to now", "bound", what, "now", now)
	return now
}

func (res *Resolver) add(n int, u timeutil.Unit) step {
	return func(t time.Time) (time.Time, error) { return res.cal.Add(t, n, u) }
}

func (res *Resolver) beginning(u timeutil.Unit) step {
	return func(t time.Time) (time.Time, error) { return res.cal.Beginning(t, u) }
}

func (res *Resolver) beginningShifted(u timeutil.Unit, shift int) step {
	return func(t time.Time) (time.Time, error) { return res.cal.BeginningShifted(t, u, shift) }
}

func (res *Resolver) endShifted(u timeutil.Unit, shift int) step {
	return func(t time.Time) (time.Time, error) { return res.cal.EndShifted(t, u, shift) }
}

func (res *Resolver) end(u timeutil.Unit) step {
	return func(t time.Time) (time.Time, error) { return res.cal.End(t, u) }
}

func (res *Resolver) dayStart(t time.Time) (time.Time, error) {
	return res.cal.DayStart(t), nil
}

func minusSecond(t time.Time) (time.Time, error) {
	return t.Add(-time.Second), nil
}

// StartDateAt resolves the start of r against now.
func (res *Resolver) StartDateAt(r Range, now time.Time) time.Time {
	now = now.In(res.cal.Location())
	switch v := r.(type) {
	case Custom:
		return res.cal.DayStart(v.start)
	case PastDays:
		n, sh := v.days, v.hourShift
		return res.tryInOrder(now, "start",
			res.pipe(now, res.beginningShifted(timeutil.Day, sh), res.add(-n, timeutil.Day), res.dayStart),
			res.pipe(now, res.add(-n, timeutil.Day), res.beginningShifted(timeutil.Day, sh), res.dayStart),
			res.pipe(now, res.add(-n, timeutil.Day), res.dayStart),
		)
	case CalendarUnit:
		off, u, sh := v.offset, v.unit, v.hourShift
		if !u.AffectedByHourShift() {
			return res.tryInOrder(now, "start",
				res.pipe(now, res.add(off, u), res.beginning(u)),
			)
		}
		return res.tryInOrder(now, "start",
			res.pipe(now, res.beginningShifted(u, sh), res.add(off, u), res.dayStart),
			res.pipe(now, res.add(off, u), res.beginningShifted(u, sh), res.dayStart),
			res.pipe(now, res.add(off, u), res.dayStart),
		)
	default:
		return now
	}
}

// EndDateAt resolves the inclusive end of r against now: the last second
// before the following day begins.
func (res *Resolver) EndDateAt(r Range, now time.Time) time.Time {
	now = now.In(res.cal.Location())
	switch v := r.(type) {
	case Custom:
		return res.tryInOrder(now, "end",
			res.pipe(v.end, res.dayStart, res.add(1, timeutil.Day), res.dayStart, minusSecond),
			res.pipe(v.end, res.add(1, timeutil.Day), res.dayStart, minusSecond),
		)
	case PastDays:
		sh := v.hourShift
		return res.tryInOrder(now, "end",
			res.pipe(now, res.endShifted(timeutil.Day, sh), res.dayStart, minusSecond),
			res.pipe(now, res.dayStart, res.endShifted(timeutil.Day, sh), minusSecond),
		)
	case CalendarUnit:
		off, u, sh := v.offset, v.unit, v.hourShift
		if !u.AffectedByHourShift() {
			return res.tryInOrder(now, "end",
				res.pipe(now, res.add(off, u), res.end(u)),
			)
		}
		return res.tryInOrder(now, "end",
			res.pipe(now, res.endShifted(u, sh), res.add(off, u), res.dayStart, minusSecond),
			res.pipe(now, res.add(off, u), res.endShifted(u, sh), res.dayStart, minusSecond),
		)
	default:
		return now
	}
}
