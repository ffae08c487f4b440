package attendance

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Date is a civil date without time of day or location
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates t to its civil date in t's location
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns midnight UTC of d
func (d Date) Time() time.Time { return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC) }

// Weekday returns the day of the week of d
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

// Before reports whether d sorts before o
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// String renders ISO form YYYY-MM-DD
func (d Date) String() string { return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day) }

// Period returns the period d falls in
func (d Date) Period() Period { return Period{Year: d.Year, Month: d.Month} }

// MarshalJSON encodes d as an ISO date string
func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

// UnmarshalJSON decodes an ISO date string
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseISODate(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseISODate parses YYYY-MM-DD
func ParseISODate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// SortDates sorts ds ascending in place
func SortDates(ds []Date) {
	sort.Slice(ds, func(i, j int) bool { return ds[i].Before(ds[j]) })
}

// Period is a calendar month/year, keyed as "MM/YYYY"
type Period struct {
	Year  int
	Month time.Month
}

// ParsePeriod parses "MM/YYYY" (also "M/YYYY" and "YYYY-MM")
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(s)
	var ms, ys string
	switch {
	case strings.Contains(s, "/"):
		parts := strings.SplitN(s, "/", 2)
		ms, ys = parts[0], parts[1]
	case strings.Contains(s, "-"):
		parts := strings.SplitN(s, "-", 2)
		ys, ms = parts[0], parts[1]
	default:
		return Period{}, fmt.Errorf("period %q: want MM/YYYY", s)
	}
	m, err := strconv.Atoi(ms)
	if err != nil || m < 1 || m > 12 {
		return Period{}, fmt.Errorf("period %q: bad month", s)
	}
	y, err := strconv.Atoi(ys)
	if err != nil || y < 1900 || y > 9999 {
		return Period{}, fmt.Errorf("period %q: bad year", s)
	}
	return Period{Year: y, Month: time.Month(m)}, nil
}

// MustPeriod is ParsePeriod that panics, for literals in tests and fixtures
func MustPeriod(s string) Period {
	p, err := ParsePeriod(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String renders the period key "MM/YYYY"
func (p Period) String() string { return fmt.Sprintf("%02d/%04d", int(p.Month), p.Year) }

// IsZero reports whether p is unset
func (p Period) IsZero() bool { return p.Year == 0 && p.Month == 0 }

// Before reports whether p sorts before o
func (p Period) Before(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Month < o.Month
}

// Days enumerates every calendar date of the period
func (p Period) Days() []Date {
	first := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
	out := make([]Date, 0, 31)
	for t := first; t.Month() == p.Month; t = t.AddDate(0, 0, 1) {
		out = append(out, DateOf(t))
	}
	return out
}

// Contains reports whether d falls inside p
func (p Period) Contains(d Date) bool { return d.Year == p.Year && d.Month == p.Month }

// MarshalJSON encodes p as its "MM/YYYY" key
func (p Period) MarshalJSON() ([]byte, error) { return json.Marshal(p.String()) }

// UnmarshalJSON decodes a "MM/YYYY" key
func (p *Period) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParsePeriod(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}
