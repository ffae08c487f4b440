//go:build integration_pg
// +build integration_pg

package service

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"pontual/internal/core/attendance"
	"pontual/internal/platform/config"
	"pontual/internal/platform/store"
	"pontual/internal/services/records/domain"
	"pontual/internal/services/records/repo"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	t.Cleanup(cancel)

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "pontual",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}
	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/pontual?sslmode=disable", host, mp.Port())
}

func TestService_Integration_AppendAndSnapshot(t *testing.T) {
	t.Setenv("SERVICE_PGSQL_DBURL", startPostgres(t))

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.FromEnv(config.New(), "pontual-test"), store.WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	if err := repo.Migrate(ctx, st.PG); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	// idempotent
	if err := repo.Migrate(ctx, st.PG); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	svc := New(st.PG, repo.NewPG, Config{})

	older := record()
	newer := record()
	newer.ID = "0b7e6f0c-7d7e-4d0f-9d51-5e0b1c1a2f02"
	newer.IngestedAt = older.IngestedAt.Add(time.Hour)
	other := record()
	other.ID = "0b7e6f0c-7d7e-4d0f-9d51-5e0b1c1a2f03"
	other.EmployeeName = "Ana Lima"
	other.Period = attendance.MustPeriod("06/2025")
	for i := range other.Days {
		other.Days[i].Date.Month = time.June
	}

	for _, r := range []attendance.Record{newer, older, other} {
		if err := svc.Append(ctx, r); err != nil {
			t.Fatalf("Append %s: %v", r.ID, err)
		}
	}

	all, err := svc.Snapshot(ctx, domain.Filter{})
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Snapshot len = %d, want 3", len(all))
	}
	if all[0].EmployeeName != "Ana Lima" || all[1].ID != older.ID || all[2].ID != newer.ID {
		t.Fatalf("unexpected order: %s %s %s", all[0].ID, all[1].ID, all[2].ID)
	}
	for _, r := range all {
		if len(r.Days) != 2 || r.DaysCount != 2 {
			t.Fatalf("record %s days = %d", r.ID, len(r.Days))
		}
	}
	if !all[1].IngestedAt.Equal(older.IngestedAt) {
		t.Fatalf("ingested_at = %v, want %v", all[1].IngestedAt, older.IngestedAt)
	}

	only, err := svc.Snapshot(ctx, domain.Filter{Period: attendance.MustPeriod("07/2025")})
	if err != nil {
		t.Fatalf("filtered Snapshot: %v", err)
	}
	if len(only) != 2 {
		t.Fatalf("filtered len = %d, want 2", len(only))
	}

	// same id twice is a duplicate key, never an upsert
	if err := svc.Append(ctx, older); err == nil {
		t.Fatalf("expected duplicate id to fail")
	}
}
