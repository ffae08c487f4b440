// Package export renders audit reports as spreadsheets for the people who reconcile them
package export

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"pontual/internal/core/stats"
	"pontual/internal/services/audit/domain"
)

// ContentType is the media type of the workbook
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet names in workbook order
const (
	SheetSummary    = "Summary"
	SheetEmployees  = "Employees"
	SheetPeriods    = "Periods"
	SheetDuplicates = "Duplicates"
	SheetNames      = "Names"
	SheetNotes      = "Notes"
)

type sheet struct {
	f    *excelize.File
	name string
	row  int
}

func (s *sheet) add(values ...any) error {
	s.row++
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		return err
	}
	return s.f.SetSheetRow(s.name, cell, &values)
}

// Workbook builds the report workbook. Minutes stay integers; hours columns are
// decimal hours rounded to two places
func Workbook(rep domain.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		_ = f.Close()
		return nil, err
	}
	for _, n := range []string{SheetEmployees, SheetPeriods, SheetDuplicates, SheetNames, SheetNotes} {
		if _, err := f.NewSheet(n); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	steps := []func(*excelize.File, domain.Report) error{summary, employees, periods, duplicates, names, notes}
	for _, step := range steps {
		if err := step(f, rep); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	hours, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if n := len(rep.Stats.Employees); n > 0 {
		if err := f.SetCellStyle(SheetEmployees, "F2", "F"+strconv.Itoa(n+1), hours); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// Bytes renders the workbook to memory
func Bytes(rep domain.Report) ([]byte, error) {
	f, err := Workbook(rep)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func summary(f *excelize.File, rep domain.Report) error {
	s := &sheet{f: f, name: SheetSummary}
	g := rep.Stats.Global
	rows := [][]any{
		{"Run", rep.RunID},
		{"Generated at", rep.GeneratedAt.UTC().Format("2006-01-02 15:04:05")},
		{"Period filter", rep.Period},
		{"Employee filter", rep.Employee},
		{"Snapshot records", rep.SnapshotRecords},
		{"Current records", g.Records},
		{"Employees", g.Employees},
		{"Periods", g.Periods},
		{"Duplicate groups", g.DuplicateGroups},
		{"Stale records", g.StaleRecords},
		{"Suspicious names", g.SuspiciousNames},
		{"Calendar findings", len(rep.Calendar)},
		{"Balance", g.Balance},
		{"Balance (hours)", stats.Hours(g.BalanceMinutes).InexactFloat64()},
	}
	for _, r := range rows {
		if err := s.add(r...); err != nil {
			return err
		}
	}
	return nil
}

func employees(f *excelize.File, rep domain.Report) error {
	s := &sheet{f: f, name: SheetEmployees}
	if err := s.add("Employee", "Periods", "Predicted (min)", "Realized (min)", "Balance (min)", "Balance (h)", "Balance"); err != nil {
		return err
	}
	for _, e := range rep.Stats.Employees {
		if err := s.add(e.EmployeeName, e.Periods, e.PredictedMinutes, e.RealizedMinutes, e.BalanceMinutes,
			e.BalanceHours.InexactFloat64(), e.Balance); err != nil {
			return err
		}
	}
	return nil
}

func periods(f *excelize.File, rep domain.Report) error {
	s := &sheet{f: f, name: SheetPeriods}
	if err := s.add("Period", "Records", "Predicted (min)", "Realized (min)", "Balance (min)", "Balance"); err != nil {
		return err
	}
	for _, p := range rep.Stats.Periods {
		if err := s.add(p.Period.String(), p.Records, p.PredictedMinutes, p.RealizedMinutes, p.BalanceMinutes,
			stats.FormatHM(p.BalanceMinutes)); err != nil {
			return err
		}
	}
	return nil
}

func duplicates(f *excelize.File, rep domain.Report) error {
	s := &sheet{f: f, name: SheetDuplicates}
	if err := s.add("Employee", "Period", "Status", "Record", "Source file", "Ingested at", "Balance (min)"); err != nil {
		return err
	}
	for _, g := range rep.Duplicates.Groups {
		for _, m := range g.Members {
			r := m.Record
			if err := s.add(g.Key.EmployeeName, g.Key.Period.String(), string(m.Status), r.ID, r.SourceFile,
				r.IngestedAt.UTC().Format("2006-01-02 15:04:05"), r.BalanceMinutes); err != nil {
				return err
			}
		}
	}
	return nil
}

func names(f *excelize.File, rep domain.Report) error {
	s := &sheet{f: f, name: SheetNames}
	if err := s.add("Name", "Reasons", "Fragments"); err != nil {
		return err
	}
	for _, v := range rep.SuspiciousNames {
		reasons := make([]string, len(v.Reasons))
		for i, r := range v.Reasons {
			reasons[i] = string(r)
		}
		if err := s.add(v.Name, strings.Join(reasons, ", "), strings.Join(v.Fragments, ", ")); err != nil {
			return err
		}
	}
	return nil
}

func notes(f *excelize.File, rep domain.Report) error {
	s := &sheet{f: f, name: SheetNotes}
	if err := s.add("Employee", "Period", "Kind", "Expected days", "Observed days", "Missing", "Extra",
		"Discrepancy (min)", "Message"); err != nil {
		return err
	}
	for _, n := range rep.Stats.Notes {
		if err := s.add(n.Key.EmployeeName, n.Key.Period.String(), string(n.Kind), n.ExpectedDays, n.ObservedDays,
			n.MissingDays, n.ExtraDays, n.DiscrepancyMinutes, n.Message); err != nil {
			return err
		}
	}
	return nil
}
