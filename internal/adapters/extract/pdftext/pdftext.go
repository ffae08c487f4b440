// Package pdftext reads attendance reports from the text layer of a PDF.
// Scanned images carry no text layer and come back as extraction errors
package pdftext

import (
	"bytes"
	"regexp"
	"strings"

	"pontual/internal/adapters/extract/fields"
	"pontual/internal/core/attendance"
	perr "pontual/internal/platform/errors"
	pstrings "pontual/internal/platform/strings"

	"github.com/ledongthuc/pdf"
)

const op = "extract.pdf"

var (
	// optional weekday abbreviation, a date, then up to two clock columns
	dayRow = regexp.MustCompile(`^(?:\p{L}{2,4}\.?\s+)?(\d{1,2}/\d{1,2}/\d{4}|\d{4}-\d{2}-\d{2})(?:\s+(\S+))?(?:\s+(\S+))?`)
	period = regexp.MustCompile(`\b(\d{1,2}/\d{4})\b`)
)

// Parse extracts the text rows of every page and reads them as a raw document
func Parse(data []byte, name string) (attendance.RawDocument, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return attendance.RawDocument{}, perr.WithOp(perr.Wrapf(err, perr.ErrorCodeExtraction, "%s: unreadable pdf", name), op)
	}
	var lines []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return attendance.RawDocument{}, perr.WithOp(perr.Wrapf(err, perr.ErrorCodeExtraction, "%s: page %d", name, i), op)
		}
		for _, row := range rows {
			lines = append(lines, joinRow(row.Content))
		}
	}
	return ParseLines(lines, name)
}

// joinRow concatenates the text runs of one row, adding a space where runs are visibly apart
func joinRow(texts pdf.TextHorizontal) string {
	var b strings.Builder
	for i, t := range texts {
		if i > 0 {
			prev := texts[i-1]
			if t.X-(prev.X+prev.W) > t.FontSize*0.2 {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
	}
	return b.String()
}

// ParseLines reads header labels ("Funcionário: ...") and day rows from text lines
func ParseLines(lines []string, name string) (attendance.RawDocument, error) {
	doc := attendance.RawDocument{Header: attendance.DocumentHeader{SourceFile: name}}
	for _, raw := range lines {
		line := pstrings.Collapse(raw)
		if line == "" {
			continue
		}
		if m := dayRow.FindStringSubmatch(line); m != nil {
			doc.Rows = append(doc.Rows, attendance.RawRow{
				Date:      m[1],
				Predicted: fields.Minutes(m[2]),
				Realized:  fields.Minutes(m[3]),
			})
			continue
		}
		f, v := fields.SplitLabel(line)
		switch f {
		case fields.Employee:
			if doc.Header.EmployeeName == "" {
				doc.Header.EmployeeName = v
			}
		case fields.Period:
			if doc.Header.Period == "" {
				if m := period.FindString(v); m != "" {
					v = m
				}
				doc.Header.Period = v
			}
		case fields.Signature:
			doc.Header.SignaturePresent = doc.Header.SignaturePresent || fields.Signed(v)
		}
	}

	switch {
	case len(doc.Rows) == 0 && doc.Header.EmployeeName == "":
		return attendance.RawDocument{}, perr.WithOp(perr.Extractionf("%s: no text layer with attendance data", name), op)
	case doc.Header.EmployeeName == "":
		return attendance.RawDocument{}, perr.WithOp(perr.WithField(perr.Extractionf("%s: employee name not found", name), "employee_name"), op)
	case doc.Header.Period == "":
		return attendance.RawDocument{}, perr.WithOp(perr.WithField(perr.Extractionf("%s: period not found", name), "period"), op)
	}
	return doc, nil
}
