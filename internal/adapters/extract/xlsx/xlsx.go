// Package xlsx reads attendance sheets exported from time-clock systems
package xlsx

import (
	"io"

	"pontual/internal/adapters/extract/fields"
	"pontual/internal/core/attendance"
	perr "pontual/internal/platform/errors"
	pstrings "pontual/internal/platform/strings"

	"github.com/xuri/excelize/v2"
)

// columns maps the day table header to cell indexes
type columns struct {
	date, predicted, realized int
}

// Parse finds the first sheet holding a day table and returns it as a raw document.
// Header fields are found by label anywhere outside the table; the value is the next non-empty cell
func Parse(r io.Reader, name string) (attendance.RawDocument, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return attendance.RawDocument{}, perr.WithOp(perr.Wrapf(err, perr.ErrorCodeExtraction, "%s: unreadable workbook", name), "extract.xlsx")
	}
	defer func() { _ = f.Close() }()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return attendance.RawDocument{}, perr.WithOp(perr.Wrapf(err, perr.ErrorCodeExtraction, "%s: sheet %q", name, sheet), "extract.xlsx")
		}
		doc, ok := parseRows(rows, name)
		if !ok {
			continue
		}
		if err := complete(doc); err != nil {
			return attendance.RawDocument{}, perr.WithOp(err, "extract.xlsx")
		}
		return doc, nil
	}
	return attendance.RawDocument{}, perr.WithOp(perr.Extractionf("%s: no attendance table found", name), "extract.xlsx")
}

// parseRows reports false when rows hold no day table header
func parseRows(rows [][]string, name string) (attendance.RawDocument, bool) {
	doc := attendance.RawDocument{Header: attendance.DocumentHeader{SourceFile: name}}
	var cols *columns
	inTable := false

	for _, row := range rows {
		if inTable {
			first := firstNonEmpty(row)
			if first >= 0 && fields.Label(row[first]) == fields.Total {
				inTable = false
				continue
			}
			date := pstrings.Collapse(cell(row, cols.date))
			if date == "" {
				continue
			}
			doc.Rows = append(doc.Rows, attendance.RawRow{
				Date:      date,
				Predicted: fields.Minutes(cell(row, cols.predicted)),
				Realized:  fields.Minutes(cell(row, cols.realized)),
			})
			continue
		}
		if c, ok := tableHeader(row); ok && cols == nil {
			cols = &c
			inTable = true
			continue
		}
		readHeader(row, &doc.Header)
	}
	return doc, cols != nil
}

func tableHeader(row []string) (columns, bool) {
	c := columns{date: -1, predicted: -1, realized: -1}
	for i, v := range row {
		switch fields.Label(v) {
		case fields.Date:
			if c.date < 0 {
				c.date = i
			}
		case fields.Predicted:
			if c.predicted < 0 {
				c.predicted = i
			}
		case fields.Realized:
			if c.realized < 0 {
				c.realized = i
			}
		}
	}
	return c, c.date >= 0 && c.predicted >= 0 && c.realized >= 0
}

func readHeader(row []string, hdr *attendance.DocumentHeader) {
	for i, v := range row {
		f, val := fields.SplitLabel(v)
		if f == fields.None {
			f = fields.Label(v)
		}
		if val == "" {
			val = next(row, i)
		}
		switch f {
		case fields.Employee:
			if hdr.EmployeeName == "" {
				hdr.EmployeeName = val
			}
		case fields.Period:
			if hdr.Period == "" {
				hdr.Period = val
			}
		case fields.Signature:
			hdr.SignaturePresent = hdr.SignaturePresent || fields.Signed(val)
		}
	}
}

func complete(doc attendance.RawDocument) error {
	switch {
	case doc.Header.EmployeeName == "":
		return perr.WithField(perr.Extractionf("%s: employee name not found", doc.Header.SourceFile), "employee_name")
	case doc.Header.Period == "":
		return perr.WithField(perr.Extractionf("%s: period not found", doc.Header.SourceFile), "period")
	}
	return nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func next(row []string, i int) string {
	for j := i + 1; j < len(row); j++ {
		if v := pstrings.Collapse(row[j]); v != "" {
			return v
		}
	}
	return ""
}

func firstNonEmpty(row []string) int {
	for i, v := range row {
		if pstrings.Collapse(v) != "" {
			return i
		}
	}
	return -1
}
