// Package attendance holds the value types shared by the reconciliation engine
package attendance

import "time"

// MaxDayMinutes is the upper bound for a single day's minute count (24h)
const MaxDayMinutes = 1440

// RawRow is one day row exactly as the extraction collaborator produced it
type RawRow struct {
	Date      string `json:"date"`
	Predicted string `json:"predicted"`
	Realized  string `json:"realized"`
}

// DayEntry is one clock record for one calendar date
type DayEntry struct {
	Date             Date `json:"date"`
	PredictedMinutes int  `json:"predicted_minutes"`
	RealizedMinutes  int  `json:"realized_minutes"`
}

// DocumentHeader carries the per-document fields that are not day rows
type DocumentHeader struct {
	EmployeeName     string `json:"employee_name"`
	Period           string `json:"period"`
	SourceFile       string `json:"source_file"`
	SignaturePresent bool   `json:"signature_present"`
}

// RawDocument is a single extracted source document
type RawDocument struct {
	Header DocumentHeader `json:"header"`
	Rows   []RawRow       `json:"rows"`
}

// Record is the reconciled unit for one employee in one period.
// Totals are always the sum of Days; records are never edited after creation
type Record struct {
	ID                    string     `json:"id"`
	EmployeeName          string     `json:"employee_name"`
	Period                Period     `json:"period"`
	PredictedTotalMinutes int        `json:"predicted_total_minutes"`
	RealizedTotalMinutes  int        `json:"realized_total_minutes"`
	BalanceMinutes        int        `json:"balance_minutes"`
	DaysCount             int        `json:"days_count"`
	SignaturePresent      bool       `json:"signature_present"`
	SourceFile            string     `json:"source_file"`
	IngestedAt            time.Time  `json:"ingested_at"`
	Days                  []DayEntry `json:"days,omitempty"`
}

// Key identifies the (employee, period) bucket a record belongs to
type Key struct {
	EmployeeName string `json:"employee_name"`
	Period       Period `json:"period"`
}

// Key returns the grouping key of r
func (r Record) Key() Key { return Key{EmployeeName: r.EmployeeName, Period: r.Period} }

// ObservedDates returns the distinct dates present in r.Days
func (r Record) ObservedDates() []Date {
	seen := make(map[Date]struct{}, len(r.Days))
	out := make([]Date, 0, len(r.Days))
	for _, d := range r.Days {
		if _, ok := seen[d.Date]; ok {
			continue
		}
		seen[d.Date] = struct{}{}
		out = append(out, d.Date)
	}
	SortDates(out)
	return out
}
