// ABOUTME: iCalendar export of saved presets as calendar events
// ABOUTME: Resolves each preset to concrete bounds and optionally adds an RRULE for calendar units

package ics

import (
	"errors"
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/charmbracelet/log"
	"github.com/teambition/rrule-go"

	"github.com/harper/daterange/internal/daterange"
	"github.com/harper/daterange/internal/models"
	"github.com/harper/daterange/internal/timeutil"
)

// ErrNotRepeatable is returned by Recurrence for ranges that have no
// natural repetition.
var ErrNotRepeatable = errors.New("range does not repeat")

const defaultProductID = "-//harper//daterange//EN"

// Options controls the exported calendar.
type Options struct {
	// Name becomes X-WR-CALNAME.
	Name string
	// ProductID becomes PRODID. Defaults to the daterange product id.
	ProductID string
	// Repeat adds an RRULE with COUNT=Repeat to calendar-unit presets.
	Repeat int
	// Logger receives skipped-preset warnings.
	Logger *log.Logger
}

// Export renders presets as a VCALENDAR with one event per preset, resolved
// against the resolver's clock. Day-granular ranges become all-day events;
// sub-day calendar units become timed events.
func Export(res *daterange.Resolver, presets []*models.Preset, opts Options) (string, error) {
	if opts.Repeat < 0 {
		return "", fmt.Errorf("repeat must be non-negative, got %d", opts.Repeat)
	}
	productID := opts.ProductID
	if productID == "" {
		productID = defaultProductID
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	if opts.Name != "" {
		cal.SetXWRCalName(opts.Name)
	}
	cal.SetXWRTimezone(res.Calendar().Location().String())

	now := res.Now().UTC()
	for _, p := range presets {
		r, err := p.DateRange()
		if err != nil {
			if opts.Logger != nil {
				opts.Logger.Warn("skipping malformed preset", "name", p.Name, "err", err)
			}
			continue
		}
		if err := addEvent(cal, res, p, r, now, opts.Repeat); err != nil {
			return "", fmt.Errorf("preset %q: %w", p.Name, err)
		}
	}

	return cal.Serialize(), nil
}

func addEvent(cal *ical.Calendar, res *daterange.Resolver, p *models.Preset, r daterange.Range, now time.Time, repeat int) error {
	start, end := res.Bounds(r)

	ev := cal.AddEvent(p.ID + "@daterange")
	ev.SetDtStampTime(now)
	ev.SetCreatedTime(p.CreatedAt)
	ev.SetModifiedAt(p.UpdatedAt)
	ev.SetSummary(p.Name)

	desc := res.Describe(r, daterange.MediumDate, false)
	if p.Description != nil {
		desc = *p.Description + "\n" + desc
	}
	ev.SetDescription(desc)
	ev.AddProperty(ical.ComponentProperty("X-DATERANGE-SPEC"), daterange.FormatSpec(r))

	// DTEND is exclusive: one second after the inclusive end.
	endExclusive := end.Add(time.Second)
	if isTimed(r) {
		ev.SetStartAt(start)
		ev.SetEndAt(endExclusive)
	} else {
		ev.SetAllDayStartAt(start)
		ev.SetAllDayEndAt(endExclusive)
	}

	if repeat == 0 {
		return nil
	}
	rule, err := Recurrence(r, start, repeat)
	if errors.Is(err, ErrNotRepeatable) {
		return nil
	}
	if err != nil {
		return err
	}
	ev.AddRrule(rule.OrigOptions.RRuleString())
	return nil
}

// isTimed reports whether r is finer than a day.
func isTimed(r daterange.Range) bool {
	u, ok := r.(daterange.CalendarUnit)
	return ok && !u.Unit().AffectedByHourShift()
}

// Recurrence builds the rule repeating calendar-unit range r from start,
// count times. Quarters repeat monthly with an interval of three.
func Recurrence(r daterange.Range, start time.Time, count int) (*rrule.RRule, error) {
	u, ok := r.(daterange.CalendarUnit)
	if !ok {
		return nil, ErrNotRepeatable
	}

	interval := 1
	var freq rrule.Frequency
	switch u.Unit() {
	case timeutil.Day:
		freq = rrule.DAILY
	case timeutil.WeekOfYear, timeutil.WeekOfMonth:
		freq = rrule.WEEKLY
	case timeutil.Month:
		freq = rrule.MONTHLY
	case timeutil.Quarter:
		freq, interval = rrule.MONTHLY, 3
	case timeutil.Year, timeutil.YearForWeekOfYear:
		freq = rrule.YEARLY
	case timeutil.Hour:
		freq = rrule.HOURLY
	case timeutil.Minute:
		freq = rrule.MINUTELY
	case timeutil.Second:
		freq = rrule.SECONDLY
	default:
		return nil, fmt.Errorf("%w: unit %s", ErrNotRepeatable, u.Unit())
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:     freq,
		Interval: interval,
		Count:    count,
		Dtstart:  start,
	})
	if err != nil {
		return nil, fmt.Errorf("build rrule: %w", err)
	}
	return rule, nil
}
