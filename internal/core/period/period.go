// Package period folds the day entries of one document into a single attendance record
package period

import (
	"fmt"

	"pontual/internal/core/attendance"
)

// WarningKind names a non-fatal aggregation finding
type WarningKind string

// WarningRepeatedDate is raised when a date appears more than once in one document
const WarningRepeatedDate WarningKind = "repeated_date"

// Warning is a non-fatal finding attached to an aggregation result
type Warning struct {
	Kind        WarningKind     `json:"kind"`
	Date        attendance.Date `json:"date"`
	Occurrences int             `json:"occurrences"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s %s x%d", w.Kind, w.Date, w.Occurrences)
}

// Result is an aggregated record plus its warnings
type Result struct {
	Record   attendance.Record `json:"record"`
	Warnings []Warning         `json:"warnings,omitempty"`
}

// Aggregate sums days (document order) into one record for hdr's employee and period.
// ID and IngestedAt are left for the caller to stamp
func Aggregate(hdr attendance.DocumentHeader, days []attendance.DayEntry) (Result, error) {
	if len(days) == 0 {
		return Result{}, &attendance.EmptyPeriodError{
			EmployeeName: hdr.EmployeeName,
			Period:       hdr.Period,
			SourceFile:   hdr.SourceFile,
		}
	}
	p, err := attendance.ParsePeriod(hdr.Period)
	if err != nil {
		return Result{}, &attendance.MalformedRowError{Field: "period", Value: hdr.Period, Err: err}
	}

	rec := attendance.Record{
		EmployeeName:     hdr.EmployeeName,
		Period:           p,
		SignaturePresent: hdr.SignaturePresent,
		SourceFile:       hdr.SourceFile,
		Days:             append([]attendance.DayEntry(nil), days...),
	}
	Recompute(&rec)

	return Result{Record: rec, Warnings: repeatedDates(days)}, nil
}

// Recompute resets the totals of rec from rec.Days
func Recompute(rec *attendance.Record) {
	pred, realized := 0, 0
	for _, d := range rec.Days {
		pred += d.PredictedMinutes
		realized += d.RealizedMinutes
	}
	rec.PredictedTotalMinutes = pred
	rec.RealizedTotalMinutes = realized
	rec.BalanceMinutes = realized - pred
	rec.DaysCount = len(rec.Days)
}

// Consistent reports whether rec's totals match its days
func Consistent(rec attendance.Record) bool {
	c := rec
	Recompute(&c)
	return c.PredictedTotalMinutes == rec.PredictedTotalMinutes &&
		c.RealizedTotalMinutes == rec.RealizedTotalMinutes &&
		c.BalanceMinutes == rec.BalanceMinutes
}

// repeatedDates reports dates seen more than once, in first-seen order
func repeatedDates(days []attendance.DayEntry) []Warning {
	counts := make(map[attendance.Date]int, len(days))
	order := make([]attendance.Date, 0, len(days))
	for _, d := range days {
		if counts[d.Date] == 0 {
			order = append(order, d.Date)
		}
		counts[d.Date]++
	}
	var out []Warning
	for _, d := range order {
		if n := counts[d]; n > 1 {
			out = append(out, Warning{Kind: WarningRepeatedDate, Date: d, Occurrences: n})
		}
	}
	return out
}
