// Package repo keeps the audit run history in ClickHouse
package repo

import (
	"context"

	"pontual/internal/modkit/repokit"
	"pontual/internal/services/audit/domain"
)

// RunsTable receives one summary row per audit run
const RunsTable = "attendance_audit_runs"

// RunsDDL creates RunsTable
const RunsDDL = `CREATE TABLE IF NOT EXISTS attendance_audit_runs (
	run_id             String,
	generated_at       DateTime64(3, 'UTC'),
	period             String,
	employee           String,
	snapshot_records   UInt32,
	current_records    UInt32,
	employees          UInt32,
	duplicate_groups   UInt32,
	stale_records      UInt32,
	suspicious_names   UInt32,
	calendar_findings  UInt32,
	balance_minutes    Int64,
	heuristics_version UInt16
) ENGINE = MergeTree
ORDER BY (generated_at, run_id)`

// Row flattens rep into RunsTable column order
func Row(rep domain.Report) []any {
	g := rep.Stats.Global
	return []any{
		rep.RunID,
		rep.GeneratedAt.UTC(),
		rep.Period,
		rep.Employee,
		uint32(rep.SnapshotRecords),
		uint32(g.Records),
		uint32(g.Employees),
		uint32(g.DuplicateGroups),
		uint32(g.StaleRecords),
		uint32(g.SuspiciousNames),
		uint32(len(rep.Calendar)),
		int64(g.BalanceMinutes),
		uint16(rep.HeuristicsVersion),
	}
}

// Runs publishes run summaries; a nil Runs or nil seam does nothing
type Runs struct {
	CH repokit.Clickhouse
}

// EnsureTable creates RunsTable
func (r *Runs) EnsureTable(ctx context.Context) error {
	if r == nil || r.CH == nil {
		return nil
	}
	return r.CH.Exec(ctx, RunsDDL)
}

// Publish appends the summary of rep
func (r *Runs) Publish(ctx context.Context, rep domain.Report) error {
	if r == nil {
		return nil
	}
	return repokit.MirrorRows(ctx, r.CH, RunsTable, [][]any{Row(rep)})
}
