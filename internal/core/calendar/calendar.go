// Package calendar compares the dates a record covers against the business days of its period.
// The comparison is informational and never blocks ingestion
package calendar

import (
	"time"

	"pontual/internal/core/attendance"
)

// Calendar decides which dates of a period are not working days
type Calendar interface {
	NonWorking(p attendance.Period) map[attendance.Date]struct{}
}

// Rules is the built-in calendar: fixed weekend days plus an explicit holiday list
type Rules struct {
	Weekend  []time.Weekday
	Holidays []attendance.Date
}

// DefaultRules is Saturday/Sunday off with no holidays
func DefaultRules() Rules {
	return Rules{Weekend: []time.Weekday{time.Saturday, time.Sunday}}
}

// NonWorking returns the weekend days and holidays that fall within p
func (r Rules) NonWorking(p attendance.Period) map[attendance.Date]struct{} {
	off := make(map[time.Weekday]bool, len(r.Weekend))
	for _, w := range r.Weekend {
		off[w] = true
	}
	out := make(map[attendance.Date]struct{})
	for _, d := range p.Days() {
		if off[d.Weekday()] {
			out[d] = struct{}{}
		}
	}
	for _, h := range r.Holidays {
		if p.Contains(h) {
			out[h] = struct{}{}
		}
	}
	return out
}

// Result is the outcome of checking one record against its period
type Result struct {
	Period   attendance.Period `json:"period"`
	Expected []attendance.Date `json:"expected"`
	Observed []attendance.Date `json:"observed"`
	Missing  []attendance.Date `json:"missing"` // expected but not observed
	Extra    []attendance.Date `json:"extra"`   // observed but not expected
}

// ExpectedWorkingDays is the number of working days the calendar assigns to the period
func (r Result) ExpectedWorkingDays() int { return len(r.Expected) }

// ObservedDays is the number of distinct dates present in the record
func (r Result) ObservedDays() int { return len(r.Observed) }

// Aligned reports whether observed dates match the expected working days exactly
func (r Result) Aligned() bool { return len(r.Missing) == 0 && len(r.Extra) == 0 }

// Check compares the distinct dates of days with the working days of p under cal.
// A nil cal uses DefaultRules
func Check(p attendance.Period, cal Calendar, days []attendance.DayEntry) Result {
	if cal == nil {
		cal = DefaultRules()
	}
	nonWorking := cal.NonWorking(p)

	expected := make([]attendance.Date, 0, 23)
	expSet := make(map[attendance.Date]struct{}, 31)
	for _, d := range p.Days() {
		if _, off := nonWorking[d]; off {
			continue
		}
		expected = append(expected, d)
		expSet[d] = struct{}{}
	}

	obsSet := make(map[attendance.Date]struct{}, len(days))
	observed := make([]attendance.Date, 0, len(days))
	for _, e := range days {
		if _, ok := obsSet[e.Date]; ok {
			continue
		}
		obsSet[e.Date] = struct{}{}
		observed = append(observed, e.Date)
	}
	attendance.SortDates(observed)

	res := Result{
		Period:   p,
		Expected: expected,
		Observed: observed,
		Missing:  []attendance.Date{},
		Extra:    []attendance.Date{},
	}
	for _, d := range expected {
		if _, ok := obsSet[d]; !ok {
			res.Missing = append(res.Missing, d)
		}
	}
	for _, d := range observed {
		if _, ok := expSet[d]; !ok {
			res.Extra = append(res.Extra, d)
		}
	}
	return res
}

// CheckRecord runs Check over a record's period and days
func CheckRecord(rec attendance.Record, cal Calendar) Result {
	return Check(rec.Period, cal, rec.Days)
}
