package repo

import (
	"context"
	"strings"
	"testing"
	"time"

	"pontual/internal/core/attendance"
)

type fakeCH struct {
	execs []string
	table string
	rows  [][]any
}

func (c *fakeCH) Insert(_ context.Context, table string, rows [][]any) error {
	c.table, c.rows = table, rows
	return nil
}
func (c *fakeCH) Exec(_ context.Context, sql string, _ ...any) error {
	c.execs = append(c.execs, sql)
	return nil
}
func (c *fakeCH) Ping(context.Context) error { return nil }
func (c *fakeCH) Close() error               { return nil }

func sampleRecord() attendance.Record {
	return attendance.Record{
		ID:           "r-1",
		EmployeeName: "Ana Lima",
		Period:       attendance.MustPeriod("07/2025"),
		SourceFile:   "ponto-07.pdf",
		IngestedAt:   time.Date(2025, 8, 1, 9, 0, 0, 0, time.FixedZone("BRT", -3*3600)),
		Days: []attendance.DayEntry{
			{Date: attendance.Date{Year: 2025, Month: 7, Day: 1}, PredictedMinutes: 480, RealizedMinutes: 450},
			{Date: attendance.Date{Year: 2025, Month: 7, Day: 2}, PredictedMinutes: 480, RealizedMinutes: 495},
		},
	}
}

func TestDayFacts_Columns(t *testing.T) {
	rows := DayFacts(sampleRecord())
	if len(rows) != 2 || len(rows[0]) != 8 {
		t.Fatalf("rows = %v", rows)
	}
	r := rows[1]
	if r[0] != "r-1" || r[2] != "07/2025" || r[4] != uint16(480) || r[5] != uint16(495) {
		t.Fatalf("unexpected row: %v", r)
	}
	if ts := r[7].(time.Time); ts.Location() != time.UTC || ts.Hour() != 12 {
		t.Fatalf("ingested_at not normalized to UTC: %v", ts)
	}
	if d := r[3].(time.Time); d.Day() != 2 || d.Hour() != 0 {
		t.Fatalf("day = %v", d)
	}
}

func TestMirror_EnsureAndDays(t *testing.T) {
	ch := &fakeCH{}
	m := &Mirror{CH: ch}

	if err := m.EnsureTable(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(ch.execs) != 1 || !strings.Contains(ch.execs[0], DayFactsTable) {
		t.Fatalf("execs = %v", ch.execs)
	}
	if err := m.Days(context.Background(), sampleRecord()); err != nil {
		t.Fatal(err)
	}
	if ch.table != DayFactsTable || len(ch.rows) != 2 {
		t.Fatalf("insert = %s %v", ch.table, ch.rows)
	}

	// no days, no insert
	ch.table, ch.rows = "", nil
	if err := m.Days(context.Background(), attendance.Record{ID: "r-2"}); err != nil || ch.table != "" {
		t.Fatalf("empty record inserted: %v %s", err, ch.table)
	}
}

func TestMirror_NilIsNoop(t *testing.T) {
	var m *Mirror
	if err := m.EnsureTable(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := m.Days(context.Background(), sampleRecord()); err != nil {
		t.Fatal(err)
	}
}
