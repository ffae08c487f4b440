// Package service runs the advisory audit: duplicate resolution, name screening,
// calendar alignment and statistics over one consistent snapshot of stored records
package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"pontual/internal/core/attendance"
	"pontual/internal/core/calendar"
	"pontual/internal/core/dedup"
	"pontual/internal/core/heuristics"
	"pontual/internal/core/namecheck"
	"pontual/internal/core/stats"
	perr "pontual/internal/platform/errors"
	"pontual/internal/platform/logger"
	"pontual/internal/platform/metrics"
	str "pontual/internal/platform/strings"
	"pontual/internal/services/audit/domain"
	"pontual/internal/services/audit/repo"
	recdom "pontual/internal/services/records/domain"
)

// Config holds tunables for the audit service
type Config struct {
	Timeout time.Duration // snapshot budget; 0 disables
}

// Service implements domain.AuditPort
type Service struct {
	Reader   recdom.ReaderPort
	Names    *namecheck.Classifier
	Calendar calendar.Calendar
	Runs     *repo.Runs
	Metrics  *metrics.Metrics
	Cfg      Config

	pack *heuristics.Pack

	// seams
	Now   func() time.Time
	NewID func() string
}

// New builds a Service from a validated heuristics pack
func New(r recdom.ReaderPort, pack *heuristics.Pack, cfg Config) *Service {
	return &Service{
		Reader: r,
		Names: namecheck.New(namecheck.Options{
			MinLength: pack.MinNameLength,
			Fragments: pack.Fragments,
		}),
		Calendar: pack.Calendar(),
		Cfg:      cfg,
		pack:     pack,
		Now:      time.Now,
		NewID:    uuid.NewString,
	}
}

func (s *Service) snapshot(ctx context.Context, f recdom.Filter) ([]attendance.Record, error) {
	if s.Reader == nil {
		return nil, perr.Unavailablef("record store not configured")
	}
	if s.Cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Cfg.Timeout)
		defer cancel()
	}
	recs, err := s.Reader.Snapshot(ctx, f)
	if err != nil {
		return nil, perr.WithOp(err, "audit.snapshot")
	}
	return recs, nil
}

// Run audits the records matching f
func (s *Service) Run(ctx context.Context, f recdom.Filter) (domain.Report, error) {
	start := time.Now()
	recs, err := s.snapshot(ctx, f)
	if err != nil {
		return domain.Report{}, err
	}

	res := dedup.Resolve(recs)
	verdicts := s.Names.ClassifyAll(names(res.Current))

	checks := make(map[attendance.Key]calendar.Result, len(res.Current))
	findings := []domain.CalendarFinding{}
	for _, r := range res.Current {
		chk := calendar.CheckRecord(r, s.Calendar)
		checks[r.Key()] = chk
		if !chk.Aligned() {
			findings = append(findings, domain.CalendarFinding{Key: r.Key(), RecordID: r.ID, Result: chk})
		}
	}

	rep := domain.Report{
		RunID:             s.NewID(),
		GeneratedAt:       s.Now().UTC(),
		Employee:          f.Employee,
		SnapshotRecords:   len(recs),
		HeuristicsVersion: s.pack.Version,
		Duplicates:        domain.Duplicates{Groups: str.IfEmpty(res.Groups, []dedup.Group{}), StaleRecords: res.StaleCount()},
		SuspiciousNames:   str.IfEmpty(namecheck.Suspicious(verdicts), []namecheck.Verdict{}),
		Calendar:          findings,
		Stats: stats.Compute(stats.Input{
			Current:            res.Current,
			Groups:             res.Groups,
			Verdicts:           verdicts,
			Checks:             checks,
			StandardDayMinutes: s.pack.StandardDayMinutes,
		}),
	}
	if !f.Period.IsZero() {
		rep.Period = f.Period.String()
	}

	took := time.Since(start)
	s.Metrics.Audit(len(res.Groups), len(rep.SuspiciousNames), took)
	if err := s.Runs.Publish(ctx, rep); err != nil {
		logger.C(ctx).Warn().Err(err).Str("run_id", rep.RunID).Msg("audit run not published")
	}

	logger.C(ctx).Info().
		Str("run_id", rep.RunID).
		Int("records", len(recs)).
		Int("duplicate_groups", len(res.Groups)).
		Int("stale_records", rep.Duplicates.StaleRecords).
		Int("suspicious_names", len(rep.SuspiciousNames)).
		Int("calendar_findings", len(findings)).
		Dur("took", took).
		Msg("audit complete")
	return rep, nil
}

// Duplicates resolves the records matching f without the rest of the audit
func (s *Service) Duplicates(ctx context.Context, f recdom.Filter) (domain.Duplicates, error) {
	recs, err := s.snapshot(ctx, f)
	if err != nil {
		return domain.Duplicates{}, err
	}
	res := dedup.Resolve(recs)
	return domain.Duplicates{Groups: str.IfEmpty(res.Groups, []dedup.Group{}), StaleRecords: res.StaleCount()}, nil
}

// ClassifyNames screens names with the configured rules; duplicates are classified once
func (s *Service) ClassifyNames(in []string) []namecheck.Verdict {
	return s.Names.ClassifyAll(in)
}

// names returns the distinct employee names of recs, sorted
func names(recs []attendance.Record) []string {
	seen := make(map[string]struct{}, len(recs))
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		if _, ok := seen[r.EmployeeName]; ok {
			continue
		}
		seen[r.EmployeeName] = struct{}{}
		out = append(out, r.EmployeeName)
	}
	sort.Strings(out)
	return out
}
