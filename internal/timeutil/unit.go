// ABOUTME: Calendar unit enumeration with stable integer codes
// ABOUTME: Names, parsing, and the hour-shift classification of each unit

package timeutil

import (
	"fmt"
	"strings"
)

// Unit is a named calendar granularity. The numeric values are persisted in
// serialized ranges and must never change.
type Unit int

const (
	Era               Unit = 1 << 1
	Year              Unit = 1 << 2
	Month             Unit = 1 << 3
	Day               Unit = 1 << 4
	Hour              Unit = 1 << 5
	Minute            Unit = 1 << 6
	Second            Unit = 1 << 7
	Weekday           Unit = 1 << 9
	WeekdayOrdinal    Unit = 1 << 10
	Quarter           Unit = 1 << 11
	WeekOfMonth       Unit = 1 << 12
	WeekOfYear        Unit = 1 << 13
	YearForWeekOfYear Unit = 1 << 14
	Nanosecond        Unit = 1 << 15
)

var unitNames = map[Unit]string{
	Era:               "era",
	Year:              "year",
	Month:             "month",
	Day:               "day",
	Hour:              "hour",
	Minute:            "minute",
	Second:            "second",
	Weekday:           "weekday",
	WeekdayOrdinal:    "weekdayOrdinal",
	Quarter:           "quarter",
	WeekOfMonth:       "weekOfMonth",
	WeekOfYear:        "weekOfYear",
	YearForWeekOfYear: "yearForWeekOfYear",
	Nanosecond:        "nanosecond",
}

// Units lists every supported unit, coarsest first.
var Units = []Unit{
	Era, Year, YearForWeekOfYear, Quarter, Month, WeekOfYear, WeekOfMonth,
	Day, Weekday, WeekdayOrdinal, Hour, Minute, Second, Nanosecond,
}

// String returns the lower camel case name of the unit.
func (u Unit) String() string {
	if name, ok := unitNames[u]; ok {
		return name
	}
	return fmt.Sprintf("unit(%d)", int(u))
}

// Valid reports whether u is one of the known units.
func (u Unit) Valid() bool {
	_, ok := unitNames[u]
	return ok
}

// AffectedByHourShift reports whether the unit's boundaries move with a
// shifted day start. Date granularities do; time granularities do not.
func (u Unit) AffectedByHourShift() bool {
	switch u {
	case Era, Year, Month, Day, Weekday, WeekdayOrdinal, Quarter, WeekOfMonth,
		WeekOfYear, YearForWeekOfYear:
		return true
	default:
		return false
	}
}

// ParseUnit accepts a unit name (case-insensitive) or one of the short
// aliases used on the command line.
func ParseUnit(s string) (Unit, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "week", "weeks":
		return WeekOfYear, nil
	case "days":
		return Day, nil
	case "months":
		return Month, nil
	case "quarters":
		return Quarter, nil
	case "years":
		return Year, nil
	}
	for u, name := range unitNames {
		if strings.ToLower(name) == key {
			return u, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedUnit, s)
}
