// Package service provides the records service implementation
package service

import (
	"context"
	"time"

	"pontual/internal/core/attendance"
	"pontual/internal/core/period"
	"pontual/internal/modkit/repokit"
	perr "pontual/internal/platform/errors"
	"pontual/internal/platform/logger"
	"pontual/internal/platform/metrics"
	"pontual/internal/services/records/domain"
	"pontual/internal/services/records/repo"
)

// Config for the records service
type Config struct {
	// QueryTimeout bounds a snapshot load; defaults to 30s if <=0
	QueryTimeout time.Duration
	// WriteTimeout bounds one append transaction; defaults to 10s if <=0
	WriteTimeout time.Duration
}

// Service implements domain.WriterPort and domain.ReaderPort over Postgres
type Service struct {
	DB      repokit.TxRunner
	Bind    func(repokit.Queryer) repo.Storage
	Mirror  *repo.Mirror // optional
	Metrics *metrics.Metrics
	Cfg     Config
}

// New constructs a new records service
func New(db repokit.TxRunner, bind func(repokit.Queryer) repo.Storage, cfg Config) *Service {
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	return &Service{DB: db, Bind: bind, Cfg: cfg}
}

// Append implements domain.WriterPort.
// The record and its days land in one transaction; the ClickHouse mirror is best effort
func (s *Service) Append(ctx context.Context, rec attendance.Record) error {
	if err := check(rec); err != nil {
		return perr.WithOp(err, "records.append")
	}
	if s.DB == nil {
		return perr.WithOp(perr.Unavailablef("records store is not configured"), "records.append")
	}

	wctx, cancel := context.WithTimeout(ctx, s.Cfg.WriteTimeout)
	defer cancel()

	err := s.DB.Tx(wctx, func(q repokit.Queryer) error {
		st := s.Bind(q)
		if err := st.InsertRecord(wctx, rec); err != nil {
			return err
		}
		return st.InsertDays(wctx, rec.ID, rec.Days)
	})
	if err != nil {
		return perr.WithOp(perr.FromPostgresf(err, "append record %s", rec.ID), "records.append")
	}
	s.Metrics.RecordsStored(1)

	if err := s.Mirror.Days(ctx, rec); err != nil {
		logger.C(ctx).Warn().Err(err).Str("record_id", rec.ID).Msg("day mirror insert failed")
	}
	return nil
}

// Snapshot implements domain.ReaderPort
func (s *Service) Snapshot(ctx context.Context, f domain.Filter) ([]attendance.Record, error) {
	if s.DB == nil {
		return nil, perr.WithOp(perr.Unavailablef("records store is not configured"), "records.snapshot")
	}
	qctx, cancel := context.WithTimeout(ctx, s.Cfg.QueryTimeout)
	defer cancel()

	var (
		recs []attendance.Record
		days map[string][]attendance.DayEntry
	)
	// repeatable read so records and days come from the same snapshot
	err := s.DB.Tx(qctx, func(q repokit.Queryer) error {
		if _, err := q.Exec(qctx, "SET TRANSACTION ISOLATION LEVEL REPEATABLE READ READ ONLY"); err != nil {
			return err
		}
		st := s.Bind(q)
		var err error
		if recs, err = st.ListRecords(qctx, f); err != nil {
			return err
		}
		days, err = st.ListDays(qctx, f)
		return err
	})
	if err != nil {
		return nil, perr.WithOp(perr.FromPostgres(err, "load snapshot"), "records.snapshot")
	}
	for i := range recs {
		recs[i].Days = days[recs[i].ID]
	}
	return recs, nil
}

// check rejects records that would break the stored invariants
func check(rec attendance.Record) error {
	switch {
	case rec.ID == "":
		return perr.WithField(perr.InvalidArgf("record id is required"), "id")
	case rec.EmployeeName == "":
		return perr.WithField(perr.InvalidArgf("employee name is required"), "employee_name")
	case rec.Period.IsZero():
		return perr.WithField(perr.InvalidArgf("period is required"), "period")
	case rec.IngestedAt.IsZero():
		return perr.WithField(perr.InvalidArgf("ingested_at is required"), "ingested_at")
	case len(rec.Days) == 0:
		return perr.WithField(perr.Validationf("record %s has no days", rec.ID), "days")
	case !period.Consistent(rec):
		return perr.WithField(perr.Validationf("record %s totals do not match its days", rec.ID), "days")
	}
	return nil
}
