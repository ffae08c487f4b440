// Package repo provides the records repository implementation
package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pontual/internal/core/attendance"
	"pontual/internal/modkit/repokit"
	"pontual/internal/services/records/domain"
)

type pg struct{ q repokit.Queryer }

// NewPG returns the Postgres Storage over q, a pool or an open transaction
func NewPG(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the records repository
type Storage interface {
	InsertRecord(ctx context.Context, rec attendance.Record) error
	InsertDays(ctx context.Context, recordID string, days []attendance.DayEntry) error
	ListRecords(ctx context.Context, f domain.Filter) ([]attendance.Record, error)
	ListDays(ctx context.Context, f domain.Filter) (map[string][]attendance.DayEntry, error)
}

// InsertRecord implements Storage
func (s *pg) InsertRecord(ctx context.Context, rec attendance.Record) error {
	_, err := s.q.Exec(ctx, `INSERT INTO attendance_records
		(id, employee_name, period_year, period_month, predicted_total_minutes, realized_total_minutes,
		balance_minutes, days_count, signature_present, source_file, ingested_at)
		VALUES ($1::uuid,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		rec.ID, rec.EmployeeName, rec.Period.Year, int(rec.Period.Month),
		rec.PredictedTotalMinutes, rec.RealizedTotalMinutes, rec.BalanceMinutes, rec.DaysCount,
		rec.SignaturePresent, rec.SourceFile, rec.IngestedAt,
	)
	return err
}

// InsertDays implements Storage. Ordinals keep document order, repeated dates included
func (s *pg) InsertDays(ctx context.Context, recordID string, days []attendance.DayEntry) error {
	if len(days) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO attendance_days
		(record_id, ordinal, day, predicted_minutes, realized_minutes) VALUES `)

	args := make([]any, 0, len(days)*5)
	for i, d := range days {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*5 + 1
		fmt.Fprintf(&sb, "($%d::uuid,$%d,$%d,$%d,$%d)", base, base+1, base+2, base+3, base+4)
		args = append(args, recordID, i, d.Date.Time(), d.PredictedMinutes, d.RealizedMinutes)
	}
	_, err := s.q.Exec(ctx, sb.String(), args...)
	return err
}

// where renders the shared filter over attendance_records aliased as r
func where(f domain.Filter, arg func(any) string) string {
	var sb strings.Builder
	sb.WriteString("WHERE TRUE\n")
	if !f.Period.IsZero() {
		sb.WriteString("  AND r.period_year = " + arg(f.Period.Year) + " AND r.period_month = " + arg(int(f.Period.Month)) + "\n")
	}
	if f.Employee != "" {
		sb.WriteString("  AND r.employee_name = " + arg(f.Employee) + "\n")
	}
	return sb.String()
}

// ListRecords implements Storage; days are not loaded
func (s *pg) ListRecords(ctx context.Context, f domain.Filter) ([]attendance.Record, error) {
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sql := `
		SELECT r.id::text, r.employee_name, r.period_year, r.period_month,
			r.predicted_total_minutes, r.realized_total_minutes, r.balance_minutes, r.days_count,
			r.signature_present, r.source_file, r.ingested_at
		FROM attendance_records r
		` + where(f, arg) + `ORDER BY r.employee_name, r.period_year, r.period_month, r.ingested_at, r.source_file, r.id`

	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []attendance.Record
	for rows.Next() {
		var (
			r     attendance.Record
			month int
		)
		if err := rows.Scan(
			&r.ID, &r.EmployeeName, &r.Period.Year, &month,
			&r.PredictedTotalMinutes, &r.RealizedTotalMinutes, &r.BalanceMinutes, &r.DaysCount,
			&r.SignaturePresent, &r.SourceFile, &r.IngestedAt,
		); err != nil {
			return nil, err
		}
		r.Period.Month = time.Month(month)
		r.IngestedAt = r.IngestedAt.UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListDays implements Storage, keyed by record id in document order
func (s *pg) ListDays(ctx context.Context, f domain.Filter) (map[string][]attendance.DayEntry, error) {
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sql := `
		SELECT d.record_id::text, d.day, d.predicted_minutes, d.realized_minutes
		FROM attendance_days d
		JOIN attendance_records r ON r.id = d.record_id
		` + where(f, arg) + `ORDER BY d.record_id, d.ordinal`

	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string][]attendance.DayEntry{}
	for rows.Next() {
		var (
			id  string
			day time.Time
			d   attendance.DayEntry
		)
		if err := rows.Scan(&id, &day, &d.PredictedMinutes, &d.RealizedMinutes); err != nil {
			return nil, err
		}
		d.Date = attendance.DateOf(day)
		out[id] = append(out[id], d)
	}
	return out, rows.Err()
}
