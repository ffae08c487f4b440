package repo

import (
	"context"

	"pontual/internal/modkit/repokit"
)

// Schema creates the append-only record tables. Statements are idempotent
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS attendance_records (
		id                      uuid PRIMARY KEY,
		employee_name           text        NOT NULL,
		period_year             int         NOT NULL,
		period_month            int         NOT NULL CHECK (period_month BETWEEN 1 AND 12),
		predicted_total_minutes int         NOT NULL,
		realized_total_minutes  int         NOT NULL,
		balance_minutes         int         NOT NULL,
		days_count              int         NOT NULL,
		signature_present       boolean     NOT NULL DEFAULT false,
		source_file             text        NOT NULL,
		ingested_at             timestamptz NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS attendance_records_key_idx
		ON attendance_records (employee_name, period_year, period_month, ingested_at)`,
	`CREATE TABLE IF NOT EXISTS attendance_days (
		record_id         uuid NOT NULL REFERENCES attendance_records (id),
		ordinal           int  NOT NULL,
		day               date NOT NULL,
		predicted_minutes int  NOT NULL CHECK (predicted_minutes BETWEEN 0 AND 1440),
		realized_minutes  int  NOT NULL CHECK (realized_minutes BETWEEN 0 AND 1440),
		PRIMARY KEY (record_id, ordinal)
	)`,
}

// Migrate applies Schema inside one transaction
func Migrate(ctx context.Context, tx repokit.TxRunner) error {
	return tx.Tx(ctx, func(q repokit.Queryer) error {
		for _, stmt := range Schema {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
}
