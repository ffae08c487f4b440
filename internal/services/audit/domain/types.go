// Package domain holds the audit contracts
package domain

import (
	"strings"
	"time"

	"pontual/internal/core/attendance"
	"pontual/internal/core/calendar"
	"pontual/internal/core/dedup"
	"pontual/internal/core/namecheck"
	"pontual/internal/core/stats"
	perr "pontual/internal/platform/errors"
	recdom "pontual/internal/services/records/domain"
)

// ReportInput narrows an audit to one period and/or one exact employee name
type ReportInput struct {
	Period   string `json:"period,omitempty" validate:"omitempty,period" example:"07/2025"`
	Employee string `json:"employee,omitempty" validate:"omitempty,max=200" example:"Breno Silva"`
}

// Filter converts the input to a records filter
func (in ReportInput) Filter() (recdom.Filter, error) {
	f := recdom.Filter{Employee: in.Employee}
	if p := strings.TrimSpace(in.Period); p != "" {
		pp, err := attendance.ParsePeriod(p)
		if err != nil {
			return recdom.Filter{}, perr.WithField(perr.InvalidArgf("invalid period %q", in.Period), "period")
		}
		f.Period = pp
	}
	return f, nil
}

// NamesInput is an ad-hoc batch of names to classify
type NamesInput struct {
	Names []string `json:"names" validate:"required,min=1,max=1000"`
}

// CalendarFinding is a current record whose dates disagree with its period's calendar
type CalendarFinding struct {
	Key      attendance.Key  `json:"key"`
	RecordID string          `json:"record_id"`
	Result   calendar.Result `json:"result"`
}

// Duplicates lists every key ingested more than once
type Duplicates struct {
	Groups       []dedup.Group `json:"groups"`
	StaleRecords int           `json:"stale_records"`
}

// Report is the outcome of one audit run over a snapshot
type Report struct {
	RunID             string              `json:"run_id"`
	GeneratedAt       time.Time           `json:"generated_at"`
	Period            string              `json:"period,omitempty"`
	Employee          string              `json:"employee,omitempty"`
	SnapshotRecords   int                 `json:"snapshot_records"`
	HeuristicsVersion int                 `json:"heuristics_version"`
	Duplicates        Duplicates          `json:"duplicates"`
	SuspiciousNames   []namecheck.Verdict `json:"suspicious_names"`
	Calendar          []CalendarFinding   `json:"calendar"`
	Stats             stats.Report        `json:"stats"`
}
