// Package dayentry converts raw extracted day rows into typed minute counts.
// Parsing is strict: nothing is clamped or coerced to zero
package dayentry

import (
	"strconv"
	"strings"
	"time"

	"pontual/internal/core/attendance"
)

// accepted date layouts, document form first
var dateLayouts = []string{"02/01/2006", "2006-01-02"}

// Normalize parses one raw row into a DayEntry
func Normalize(raw attendance.RawRow) (attendance.DayEntry, error) {
	d, err := parseDate(raw.Date)
	if err != nil {
		return attendance.DayEntry{}, err
	}
	pred, err := parseMinutes(attendance.FieldPredicted, raw.Predicted)
	if err != nil {
		return attendance.DayEntry{}, err
	}
	realized, err := parseMinutes(attendance.FieldRealized, raw.Realized)
	if err != nil {
		return attendance.DayEntry{}, err
	}
	return attendance.DayEntry{Date: d, PredictedMinutes: pred, RealizedMinutes: realized}, nil
}

// NormalizeAll parses every row in document order. Entries for rows that
// failed are omitted; each failure is returned as a *attendance.RowError
func NormalizeAll(rows []attendance.RawRow) ([]attendance.DayEntry, []error) {
	out := make([]attendance.DayEntry, 0, len(rows))
	var errs []error
	for i, r := range rows {
		e, err := Normalize(r)
		if err != nil {
			errs = append(errs, &attendance.RowError{Index: i, Err: err})
			continue
		}
		out = append(out, e)
	}
	return out, errs
}

func parseDate(s string) (attendance.Date, error) {
	v := strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return attendance.DateOf(t), nil
		}
		lastErr = err
	}
	return attendance.Date{}, &attendance.MalformedRowError{Field: attendance.FieldDate, Value: s, Err: lastErr}
}

func parseMinutes(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &attendance.MalformedRowError{Field: field, Value: s, Err: err}
	}
	if n < 0 || n > attendance.MaxDayMinutes {
		return 0, &attendance.OutOfRangeError{Field: field, Value: n}
	}
	return n, nil
}
