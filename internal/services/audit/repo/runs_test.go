package repo

import (
	"context"
	"testing"
	"time"

	"pontual/internal/core/stats"
	"pontual/internal/services/audit/domain"
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

func TestRuns_PublishAndEnsure(t *testing.T) {
	ch := &fakeCH{}
	r := &Runs{CH: ch}

	if err := r.EnsureTable(context.Background()); err != nil || len(ch.execs) != 1 {
		t.Fatalf("EnsureTable: %v %v", err, ch.execs)
	}

	rep := domain.Report{
		RunID:             "run-1",
		GeneratedAt:       time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		SnapshotRecords:   5,
		HeuristicsVersion: 1,
		Stats:             stats.Report{Global: stats.Global{Records: 4, DuplicateGroups: 1, StaleRecords: 1, BalanceMinutes: -30}},
	}
	if err := r.Publish(context.Background(), rep); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if ch.table != RunsTable || len(ch.rows) != 1 || len(ch.rows[0]) != 13 {
		t.Fatalf("unexpected insert: %s %v", ch.table, ch.rows)
	}
	if ch.rows[0][0] != "run-1" || ch.rows[0][11] != int64(-30) {
		t.Fatalf("unexpected row: %v", ch.rows[0])
	}
}

func TestRuns_NilIsNoop(t *testing.T) {
	var r *Runs
	if err := r.Publish(context.Background(), domain.Report{}); err != nil {
		t.Fatal(err)
	}
	if err := (&Runs{}).EnsureTable(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := (&Runs{}).Publish(context.Background(), domain.Report{}); err != nil {
		t.Fatal(err)
	}
}
