// Package stats computes per-employee and global aggregates over a resolved record set.
// All arithmetic is in integer minutes; hours appear only in presentation fields
package stats

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"pontual/internal/core/attendance"
	"pontual/internal/core/calendar"
	"pontual/internal/core/dedup"
	"pontual/internal/core/namecheck"
)

// Input is everything the reporter needs; all of it is read-only
type Input struct {
	Current            []attendance.Record
	Groups             []dedup.Group
	Verdicts           []namecheck.Verdict
	Checks             map[attendance.Key]calendar.Result
	StandardDayMinutes int
}

// EmployeeTotals aggregates one employee across their current records
type EmployeeTotals struct {
	EmployeeName     string          `json:"employee_name"`
	PredictedMinutes int             `json:"predicted_minutes"`
	RealizedMinutes  int             `json:"realized_minutes"`
	BalanceMinutes   int             `json:"balance_minutes"`
	Periods          int             `json:"periods"`
	Balance          string          `json:"balance"`
	BalanceHours     decimal.Decimal `json:"balance_hours"`
}

// PeriodTotals aggregates one period across employees
type PeriodTotals struct {
	Period           attendance.Period `json:"period"`
	Records          int               `json:"records"`
	PredictedMinutes int               `json:"predicted_minutes"`
	RealizedMinutes  int               `json:"realized_minutes"`
	BalanceMinutes   int               `json:"balance_minutes"`
}

// Global is the snapshot-wide summary
type Global struct {
	Employees       int    `json:"employees"`
	Periods         int    `json:"periods"`
	Records         int    `json:"records"`
	DuplicateGroups int    `json:"duplicate_groups"`
	StaleRecords    int    `json:"stale_records"`
	SuspiciousNames int    `json:"suspicious_names"`
	BalanceMinutes  int    `json:"balance_minutes"`
	Balance         string `json:"balance"`
}

// NoteKind classifies an explanatory note
type NoteKind string

// Note kinds
const (
	NoteCalendarExplained    NoteKind = "calendar_explained"
	NoteUnexplainedShortfall NoteKind = "unexplained_shortfall"
	NoteUnexplainedExcess    NoteKind = "unexplained_excess"
)

// Note explains how a record's predicted total compares with its calendar
type Note struct {
	Kind               NoteKind       `json:"kind"`
	Key                attendance.Key `json:"key"`
	ExpectedDays       int            `json:"expected_days"`
	ObservedDays       int            `json:"observed_days"`
	MissingDays        int            `json:"missing_days"`
	ExtraDays          int            `json:"extra_days"`
	ExpectedMinutes    int            `json:"expected_minutes"`
	PredictedMinutes   int            `json:"predicted_minutes"`
	DiscrepancyMinutes int            `json:"discrepancy_minutes"` // expected - predicted; positive is a shortfall
	Message            string         `json:"message"`
}

// Report is the statistics payload
type Report struct {
	Global    Global           `json:"global"`
	Employees []EmployeeTotals `json:"employees"`
	Periods   []PeriodTotals   `json:"periods"`
	Notes     []Note           `json:"notes"`
}

// Compute builds the report for in
func Compute(in Input) Report {
	byEmp := make(map[string]*EmployeeTotals)
	byPeriod := make(map[attendance.Period]*PeriodTotals)
	total := 0

	for _, r := range in.Current {
		e := byEmp[r.EmployeeName]
		if e == nil {
			e = &EmployeeTotals{EmployeeName: r.EmployeeName}
			byEmp[r.EmployeeName] = e
		}
		e.PredictedMinutes += r.PredictedTotalMinutes
		e.RealizedMinutes += r.RealizedTotalMinutes
		e.BalanceMinutes += r.BalanceMinutes
		e.Periods++

		p := byPeriod[r.Period]
		if p == nil {
			p = &PeriodTotals{Period: r.Period}
			byPeriod[r.Period] = p
		}
		p.Records++
		p.PredictedMinutes += r.PredictedTotalMinutes
		p.RealizedMinutes += r.RealizedTotalMinutes
		p.BalanceMinutes += r.BalanceMinutes

		total += r.BalanceMinutes
	}

	rep := Report{
		Employees: make([]EmployeeTotals, 0, len(byEmp)),
		Periods:   make([]PeriodTotals, 0, len(byPeriod)),
		Notes:     []Note{},
	}
	for _, e := range byEmp {
		e.Balance = FormatHM(e.BalanceMinutes)
		e.BalanceHours = Hours(e.BalanceMinutes)
		rep.Employees = append(rep.Employees, *e)
	}
	sort.Slice(rep.Employees, func(i, j int) bool {
		return rep.Employees[i].EmployeeName < rep.Employees[j].EmployeeName
	})
	for _, p := range byPeriod {
		rep.Periods = append(rep.Periods, *p)
	}
	sort.Slice(rep.Periods, func(i, j int) bool { return rep.Periods[i].Period.Before(rep.Periods[j].Period) })

	suspicious := 0
	for _, v := range in.Verdicts {
		if v.Suspicious {
			suspicious++
		}
	}
	stale := 0
	for _, g := range in.Groups {
		stale += len(g.Members) - 1
	}

	rep.Global = Global{
		Employees:       len(byEmp),
		Periods:         len(byPeriod),
		Records:         len(in.Current),
		DuplicateGroups: len(in.Groups),
		StaleRecords:    stale,
		SuspiciousNames: suspicious,
		BalanceMinutes:  total,
		Balance:         FormatHM(total),
	}

	if in.StandardDayMinutes > 0 {
		for _, r := range in.Current {
			chk, ok := in.Checks[r.Key()]
			if !ok {
				continue
			}
			if n, ok := Explain(r, chk, in.StandardDayMinutes); ok {
				rep.Notes = append(rep.Notes, n)
			}
		}
		sort.SliceStable(rep.Notes, func(i, j int) bool {
			a, b := rep.Notes[i].Key, rep.Notes[j].Key
			if a.EmployeeName != b.EmployeeName {
				return a.EmployeeName < b.EmployeeName
			}
			return a.Period.Before(b.Period)
		})
	}
	return rep
}

// Explain compares rec's predicted total with the calendar's expectation.
// It returns false when the two agree
func Explain(rec attendance.Record, chk calendar.Result, stdDay int) (Note, bool) {
	expected := len(chk.Expected) * stdDay
	diff := expected - rec.PredictedTotalMinutes
	if diff == 0 {
		return Note{}, false
	}

	n := Note{
		Key:                rec.Key(),
		ExpectedDays:       len(chk.Expected),
		ObservedDays:       len(chk.Observed),
		MissingDays:        len(chk.Missing),
		ExtraDays:          len(chk.Extra),
		ExpectedMinutes:    expected,
		PredictedMinutes:   rec.PredictedTotalMinutes,
		DiscrepancyMinutes: diff,
	}
	attributed := len(chk.Missing)*stdDay - extraMinutes(rec, chk.Extra)

	switch {
	case diff == attributed:
		n.Kind = NoteCalendarExplained
		n.Message = fmt.Sprintf("predicted %s vs expected %s explained by %d missing and %d extra day(s)",
			FormatHM(rec.PredictedTotalMinutes), FormatHM(expected), n.MissingDays, n.ExtraDays)
	case diff > 0:
		n.Kind = NoteUnexplainedShortfall
		n.Message = fmt.Sprintf("predicted %s is %s short of expected %s; calendar accounts for %s",
			FormatHM(rec.PredictedTotalMinutes), FormatHM(diff), FormatHM(expected), FormatHM(attributed))
	default:
		n.Kind = NoteUnexplainedExcess
		n.Message = fmt.Sprintf("predicted %s exceeds expected %s by %s; calendar accounts for %s",
			FormatHM(rec.PredictedTotalMinutes), FormatHM(expected), FormatHM(-diff), FormatHM(-attributed))
	}
	return n, true
}

// extraMinutes sums the predicted minutes rec carries on dates the calendar
// does not expect. Weekend rows listed at zero add nothing
func extraMinutes(rec attendance.Record, extra []attendance.Date) int {
	if len(extra) == 0 {
		return 0
	}
	off := make(map[attendance.Date]bool, len(extra))
	for _, d := range extra {
		off[d] = true
	}
	sum := 0
	for _, d := range rec.Days {
		if off[d.Date] {
			sum += d.PredictedMinutes
		}
	}
	return sum
}

// FormatHM renders minutes as H:MM with the sign kept off the magnitude (-45 -> "-0:45")
func FormatHM(m int) string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%d:%02d", sign, m/60, m%60)
}

// Hours converts minutes to decimal hours rounded to two places
func Hours(m int) decimal.Decimal {
	return decimal.NewFromInt(int64(m)).Div(decimal.NewFromInt(60)).Round(2)
}
