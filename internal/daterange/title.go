// ABOUTME: Human-readable titles and descriptions of date ranges
// ABOUTME: Menu titles, short titles, and formatter-based range descriptions

package daterange

import (
	"fmt"
	"time"

	"github.com/harper/daterange/internal/timeutil"
)

var (
	lastTitles = map[timeutil.Unit]string{
		timeutil.Day:        "Yesterday",
		timeutil.WeekOfYear: "Last Week",
		timeutil.Month:      "Last Month",
		timeutil.Quarter:    "Last Quarter",
		timeutil.Year:       "Last Year",
	}
	thisTitles = map[timeutil.Unit]string{
		timeutil.Day:        "Today",
		timeutil.WeekOfYear: "This Week",
		timeutil.Month:      "This Month",
		timeutil.Quarter:    "This Quarter",
		timeutil.Year:       "This Year",
	}
	shortTitles = map[timeutil.Unit]string{
		timeutil.WeekOfYear: "Week",
		timeutil.Month:      "Month",
		timeutil.Quarter:    "Quarter",
		timeutil.Year:       "Year",
	}
)

func (Custom) Title() (string, bool) { return "Custom", true }

func (c Custom) ShortTitle() (string, bool) { return c.Title() }

func (p PastDays) Title() (string, bool) {
	return fmt.Sprintf("Past %d Days", p.days), true
}

func (p PastDays) ShortTitle() (string, bool) {
	return fmt.Sprintf("%d Days", p.days), true
}

func (u CalendarUnit) Title() (string, bool) {
	var title string
	switch u.offset {
	case -1:
		title = lastTitles[u.unit]
	case 0:
		title = thisTitles[u.unit]
	}
	return title, title != ""
}

func (u CalendarUnit) ShortTitle() (string, bool) {
	if u.offset == 0 {
		if s, ok := shortTitles[u.unit]; ok {
			return s, true
		}
	}
	return u.Title()
}

// Formatter renders a single instant for range descriptions.
type Formatter interface {
	Format(t time.Time) string
}

// LayoutFormatter formats with a Go reference-time layout.
type LayoutFormatter string

// Format implements Formatter.
func (l LayoutFormatter) Format(t time.Time) string { return t.Format(string(l)) }

// Common layouts for descriptions.
const (
	ShortDate  LayoutFormatter = "02.01.06"
	MediumDate LayoutFormatter = "Jan 2, 2006"
	ISODate    LayoutFormatter = "2006-01-02"
	monthYear                  = "January 2006"
)

// Describe renders r for display. Months other than the current one read
// "October 2015"; relative ranges use their title when allowRelative is
// set; otherwise the resolved bounds are formatted, collapsing to a single
// date when both fall on the same day.
func (res *Resolver) Describe(r Range, f Formatter, allowRelative bool) string {
	start, end := res.Bounds(r)

	switch v := r.(type) {
	case CalendarUnit:
		if v.unit == timeutil.Month && (!allowRelative || v.offset != 0) {
			return start.Format(monthYear)
		}
		if allowRelative {
			if title, ok := v.Title(); ok {
				return title
			}
		}
	case PastDays:
		if allowRelative {
			title, _ := v.Title()
			return title
		}
	}

	if res.sameDay(start, end) {
		return f.Format(end)
	}
	return f.Format(start) + " – " + f.Format(end)
}

func (res *Resolver) sameDay(a, b time.Time) bool {
	da, err := res.cal.Beginning(a, timeutil.Day)
	if err != nil {
		return false
	}
	db, err := res.cal.Beginning(b, timeutil.Day)
	if err != nil {
		return false
	}
	return da.Equal(db)
}
