// ABOUTME: Headless date range picker state: current range, bounds, stepping
// ABOUTME: Restricts every new range to min/max and notifies listeners on change

package picker

import (
	"time"

	"github.com/harper/daterange/internal/daterange"
	"github.com/harper/daterange/internal/timeutil"
)

// DefaultRange is the selection of a fresh picker.
func DefaultRange(hourShift int) daterange.Range {
	return daterange.NewPastDays(7, hourShift)
}

// Picker holds a selected range and the optional bounds it must stay
// within. It has a single owner and is not safe for concurrent use.
type Picker struct {
	res       *daterange.Resolver
	rng       daterange.Range
	minDate   *time.Time
	maxDate   *time.Time
	hourShift int
	listeners []func(daterange.Range)
}

// New returns a picker selecting initial, or DefaultRange when nil.
func New(res *daterange.Resolver, initial daterange.Range) *Picker {
	p := &Picker{res: res}
	if initial == nil {
		initial = DefaultRange(0)
	}
	p.hourShift = initial.HourShift()
	p.rng = initial
	return p
}

// Range returns the current selection.
func (p *Picker) Range() daterange.Range { return p.rng }

// Resolver returns the resolver the picker evaluates ranges with.
func (p *Picker) Resolver() *daterange.Resolver { return p.res }

// OnChange registers fn to run after every change of the selection.
func (p *Picker) OnChange(fn func(daterange.Range)) {
	p.listeners = append(p.listeners, fn)
}

// SetRange restricts r to the picker's bounds and selects it. It reports
// whether the selection changed.
func (p *Picker) SetRange(r daterange.Range) bool {
	restricted := p.res.RestrictTo(r, p.minDate, p.maxDate)
	if p.rng != nil && p.res.Equal(p.rng, restricted) {
		return false
	}
	p.rng = restricted
	p.notify()
	return true
}

func (p *Picker) notify() {
	for _, fn := range p.listeners {
		fn(p.rng)
	}
}

// MinDate returns the lower bound, if any.
func (p *Picker) MinDate() *time.Time { return p.minDate }

// MaxDate returns the upper bound, if any.
func (p *Picker) MaxDate() *time.Time { return p.maxDate }

// SetMinDate sets or clears the lower bound and re-restricts the selection.
func (p *Picker) SetMinDate(t *time.Time) {
	p.minDate = copyTime(t)
	p.SetRange(p.rng)
}

// SetMaxDate sets or clears the upper bound and re-restricts the selection.
func (p *Picker) SetMaxDate(t *time.Time) {
	p.maxDate = copyTime(t)
	p.SetRange(p.rng)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// HourShift returns the day start hour applied to new selections.
func (p *Picker) HourShift() int { return p.hourShift }

// SetHourShift changes the day start hour of the picker and its selection.
// Custom ranges compare equal across shifts, so the shifted range is
// assigned directly rather than through SetRange.
func (p *Picker) SetHourShift(h int) {
	p.hourShift = h
	p.rng = p.res.RestrictTo(p.rng.WithHourShift(h), p.minDate, p.maxDate)
	p.notify()
}

// StartDate is the resolved start of the selection.
func (p *Picker) StartDate() time.Time { return p.res.StartDate(p.rng) }

// EndDate is the resolved end of the selection.
func (p *Picker) EndDate() time.Time { return p.res.EndDate(p.rng) }

// SetStartDate selects a custom range from t, pushing the end forward
// if t lies after it.
func (p *Picker) SetStartDate(t time.Time) bool {
	end := p.EndDate()
	if t.After(end) {
		end = t
	}
	return p.SetRange(daterange.NewCustom(t, end, p.hourShift))
}

// SetEndDate selects a custom range ending at t, pulling the start back
// if t lies before it.
func (p *Picker) SetEndDate(t time.Time) bool {
	start := p.StartDate()
	if t.Before(start) {
		start = t
	}
	return p.SetRange(daterange.NewCustom(start, t, p.hourShift))
}

// SetDates selects a custom range.
func (p *Picker) SetDates(start, end time.Time) bool {
	return p.SetRange(daterange.NewCustom(start, end, p.hourShift))
}

// SelectToday selects the current day.
func (p *Picker) SelectToday() bool {
	return p.SetRange(daterange.Today(p.hourShift))
}

// SelectPreset selects r with the picker's hour shift.
func (p *Picker) SelectPreset(r daterange.Range) bool {
	return p.SetRange(r.WithHourShift(p.hourShift))
}

// Previous steps the selection back by its own length.
func (p *Picker) Previous() bool { return p.SetRange(p.res.Previous(p.rng)) }

// Next steps the selection forward by its own length.
func (p *Picker) Next() bool { return p.SetRange(p.res.Next(p.rng)) }

// PreviousAllowed is false once the selection starts on the min day.
func (p *Picker) PreviousAllowed() bool {
	if p.minDate == nil {
		return true
	}
	lo, err := p.res.Calendar().Beginning(*p.minDate, timeutil.Day)
	if err != nil {
		return true
	}
	return !p.StartDate().Equal(lo)
}

// NextAllowed is false once the selection ends on the max day.
func (p *Picker) NextAllowed() bool {
	if p.maxDate == nil {
		return true
	}
	hi, err := p.res.Calendar().End(*p.maxDate, timeutil.Day)
	if err != nil {
		return true
	}
	return !p.EndDate().Equal(hi)
}

// Label describes the selection.
func (p *Picker) Label(f daterange.Formatter) string {
	return p.res.Describe(p.rng, f, true)
}

// DayChanged tells listeners that relative selections may now resolve to
// different dates.
func (p *Picker) DayChanged() {
	p.notify()
}

// MarshalState encodes the selection for persistence.
func (p *Picker) MarshalState() ([]byte, error) {
	return daterange.Marshal(p.rng)
}

// LoadState restores a selection written by MarshalState. Malformed data
// leaves the current selection in place and is reported as an error.
func (p *Picker) LoadState(data []byte) error {
	r, err := daterange.Unmarshal(data)
	if err != nil {
		return err
	}
	p.SetRange(r)
	return nil
}
