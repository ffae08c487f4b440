package repo

import (
	"context"

	"pontual/internal/core/attendance"
	"pontual/internal/modkit/repokit"
)

// DayFactsTable is the ClickHouse table fed with one row per stored day
const DayFactsTable = "attendance_day_facts"

// DayFactsDDL creates DayFactsTable
const DayFactsDDL = `CREATE TABLE IF NOT EXISTS attendance_day_facts (
	record_id         String,
	employee_name     String,
	period            LowCardinality(String),
	day               Date,
	predicted_minutes UInt16,
	realized_minutes  UInt16,
	source_file       String,
	ingested_at       DateTime64(3, 'UTC')
) ENGINE = MergeTree
ORDER BY (period, employee_name, day, record_id)`

// DayFacts flattens rec into ClickHouse rows in DayFactsTable column order
func DayFacts(rec attendance.Record) [][]any {
	out := make([][]any, 0, len(rec.Days))
	for _, d := range rec.Days {
		out = append(out, []any{
			rec.ID,
			rec.EmployeeName,
			rec.Period.String(),
			d.Date.Time(),
			uint16(d.PredictedMinutes),
			uint16(d.RealizedMinutes),
			rec.SourceFile,
			rec.IngestedAt.UTC(),
		})
	}
	return out
}

// Mirror copies stored days to ClickHouse for ad-hoc analytics
type Mirror struct {
	CH repokit.Clickhouse
}

// EnsureTable creates DayFactsTable; a nil mirror does nothing
func (m *Mirror) EnsureTable(ctx context.Context) error {
	if m == nil || m.CH == nil {
		return nil
	}
	return m.CH.Exec(ctx, DayFactsDDL)
}

// Days inserts the day facts of rec
func (m *Mirror) Days(ctx context.Context, rec attendance.Record) error {
	if m == nil {
		return nil
	}
	return repokit.MirrorRows(ctx, m.CH, DayFactsTable, DayFacts(rec))
}
