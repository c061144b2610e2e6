// ABOUTME: Serialized form of date ranges as a tagged record
// ABOUTME: JSON/YAML encoding with validation on decode

package daterange

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harper/daterange/internal/timeutil"
)

// ErrMalformedRecord is returned when a record does not describe a range.
var ErrMalformedRecord = errors.New("malformed date range record")

// Record case tags.
const (
	CaseCustom       = "Custom"
	CasePastDays     = "PastDays"
	CaseCalendarUnit = "CalendarUnit"
)

// Record is the persisted form of a Range. Case-specific fields are
// pointers so that absence can be told apart from zero.
type Record struct {
	Case      string     `json:"case" yaml:"case"`
	StartDate *time.Time `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	PastDays  *int       `json:"pastDays,omitempty" yaml:"pastDays,omitempty"`
	Offset    *int       `json:"offset,omitempty" yaml:"offset,omitempty"`
	Unit      *int       `json:"unit,omitempty" yaml:"unit,omitempty"`
	HourShift int        `json:"hourShift,omitempty" yaml:"hourShift,omitempty"`
}

func (c Custom) Record() Record {
	start, end := c.start, c.end
	return Record{Case: CaseCustom, StartDate: &start, EndDate: &end, HourShift: c.hourShift}
}

func (p PastDays) Record() Record {
	days := p.days
	return Record{Case: CasePastDays, PastDays: &days, HourShift: p.hourShift}
}

func (u CalendarUnit) Record() Record {
	offset, unit := u.offset, int(u.unit)
	return Record{Case: CaseCalendarUnit, Offset: &offset, Unit: &unit, HourShift: u.hourShift}
}

// FromRecord rebuilds a Range.
func FromRecord(rec Record) (Range, error) {
	switch rec.Case {
	case CaseCustom:
		if rec.StartDate == nil || rec.EndDate == nil {
			return nil, fmt.Errorf("%w: custom range needs startDate and endDate", ErrMalformedRecord)
		}
		return NewCustom(*rec.StartDate, *rec.EndDate, rec.HourShift), nil
	case CasePastDays:
		if rec.PastDays == nil {
			return nil, fmt.Errorf("%w: past days range needs pastDays", ErrMalformedRecord)
		}
		return NewPastDays(*rec.PastDays, rec.HourShift), nil
	case CaseCalendarUnit:
		if rec.Offset == nil || rec.Unit == nil {
			return nil, fmt.Errorf("%w: calendar unit range needs offset and unit", ErrMalformedRecord)
		}
		unit := timeutil.Unit(*rec.Unit)
		if !unit.Valid() {
			return nil, fmt.Errorf("%w: unknown unit code %d", ErrMalformedRecord, *rec.Unit)
		}
		return NewCalendarUnit(*rec.Offset, unit, rec.HourShift), nil
	case "":
		return nil, fmt.Errorf("%w: missing case", ErrMalformedRecord)
	default:
		return nil, fmt.Errorf("%w: unknown case %q", ErrMalformedRecord, rec.Case)
	}
}

// Marshal encodes r as JSON.
func Marshal(r Range) ([]byte, error) {
	return json.Marshal(r.Record())
}

// Unmarshal decodes a JSON record.
func Unmarshal(data []byte) (Range, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return FromRecord(rec)
}
