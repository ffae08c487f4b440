// Package service implements per-document ingestion: normalize, aggregate, calendar check, append
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"pontual/internal/adapters/extract"
	"pontual/internal/core/attendance"
	"pontual/internal/core/calendar"
	"pontual/internal/core/dayentry"
	"pontual/internal/core/period"
	perr "pontual/internal/platform/errors"
	"pontual/internal/platform/logger"
	"pontual/internal/platform/metrics"
	pnet "pontual/internal/platform/net"
	"pontual/internal/services/ingest/domain"
	recdom "pontual/internal/services/records/domain"
)

const op = "ingest.document"

// Config holds tunables for the ingest service
type Config struct {
	Workers    int           // documents processed in parallel; <=0 -> 1
	DocTimeout time.Duration // budget for storing one document; 0 disables
}

// Service ingests documents into the record store
type Service struct {
	Writer   recdom.WriterPort
	Calendar calendar.Calendar
	Metrics  *metrics.Metrics
	Cfg      Config

	// seams
	Now   func() time.Time
	NewID func() string
}

// New constructs a Service; a nil calendar falls back to weekends off with no holidays
func New(w recdom.WriterPort, cal calendar.Calendar, cfg Config) *Service {
	if cal == nil {
		cal = calendar.DefaultRules()
	}
	return &Service{
		Writer:   w,
		Calendar: cal,
		Cfg:      cfg,
		Now:      time.Now,
		NewID:    uuid.NewString,
	}
}

// IngestDocument stores one document as a new record.
// A single bad row fails the whole document and every rejected row is reported
func (s *Service) IngestDocument(ctx context.Context, doc attendance.RawDocument) (domain.Outcome, error) {
	ctx = logger.WithDocument(ctx, doc.Header.SourceFile)
	out := domain.Outcome{
		SourceFile:   doc.Header.SourceFile,
		EmployeeName: doc.Header.EmployeeName,
		Period:       doc.Header.Period,
		Status:       domain.StatusFailed,
	}

	res, err := s.build(doc)
	if err != nil {
		return s.fail(ctx, out, err)
	}
	rec := res.Record
	chk := calendar.Check(rec.Period, s.Calendar, rec.Days)

	rec.ID = s.NewID()
	rec.IngestedAt = s.Now().UTC()

	actx := ctx
	if s.Cfg.DocTimeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, s.Cfg.DocTimeout)
		defer cancel()
	}
	if s.Writer == nil {
		return s.fail(ctx, out, perr.Unavailablef("record store not configured"))
	}
	if err := s.Writer.Append(actx, rec); err != nil {
		return s.fail(ctx, out, err)
	}

	out.Status = domain.StatusOK
	out.RecordID = rec.ID
	out.Warnings = res.Warnings
	out.Calendar = &chk
	s.Metrics.Document(true)

	ev := logger.C(ctx).Info().
		Str("record_id", rec.ID).
		Str("period", rec.Period.String()).
		Int("days", rec.DaysCount).
		Int("balance_minutes", rec.BalanceMinutes)
	if len(res.Warnings) > 0 {
		ev = ev.Int("warnings", len(res.Warnings))
	}
	if !chk.Aligned() {
		ev = ev.Int("missing_days", len(chk.Missing)).Int("extra_days", len(chk.Extra))
	}
	ev.Msg("document ingested")
	return out, nil
}

// build runs the pure part of ingestion and maps core failures to validation errors
func (s *Service) build(doc attendance.RawDocument) (period.Result, error) {
	if strings.TrimSpace(doc.Header.EmployeeName) == "" {
		return period.Result{}, perr.WithField(perr.Validationf("employee name is required"), "employee_name")
	}
	if _, err := attendance.ParsePeriod(doc.Header.Period); err != nil {
		return period.Result{}, perr.WithField(perr.Validationf("invalid period %q", doc.Header.Period), "period")
	}

	days, rowErrs := dayentry.NormalizeAll(doc.Rows)
	if len(rowErrs) > 0 {
		s.countRejected(rowErrs)
		details := make([]error, 0, len(rowErrs))
		for _, e := range rowErrs {
			details = append(details, perr.WithField(perr.Validationf("%v", e), attendance.FieldOf(e)))
		}
		err := perr.Validationf("%d of %d rows rejected", len(rowErrs), len(doc.Rows))
		return period.Result{}, perr.WithDetails(perr.WithField(err, "rows"), details...)
	}

	res, err := period.Aggregate(doc.Header, days)
	if err != nil {
		var empty *attendance.EmptyPeriodError
		if errors.As(err, &empty) {
			s.Metrics.RowsRejected("empty_period", 1)
			return period.Result{}, perr.WithField(perr.Validationf("%v", err), "rows")
		}
		return period.Result{}, perr.WithField(perr.Validationf("%v", err), attendance.FieldOf(err))
	}
	return res, nil
}

func (s *Service) countRejected(errs []error) {
	var malformed, outOfRange int
	for _, e := range errs {
		var oor *attendance.OutOfRangeError
		if errors.As(e, &oor) {
			outOfRange++
		} else {
			malformed++
		}
	}
	s.Metrics.RowsRejected("malformed", malformed)
	s.Metrics.RowsRejected("out_of_range", outOfRange)
}

func (s *Service) fail(ctx context.Context, out domain.Outcome, err error) (domain.Outcome, error) {
	if _, ok := perr.As(err); !ok {
		err = perr.Wrap(err, perr.ErrorCodeUnknown, "ingest failed")
	}
	if e, _ := perr.As(err); e.Op() == "" {
		err = perr.WithOp(err, op)
	}

	e, _ := perr.As(err)
	if d := e.Details(); len(d) > 0 {
		out.Errors = d
	} else {
		out.Errors = []perr.Wire{e.ToWire()}
	}
	s.Metrics.Document(false)
	logger.C(ctx).Warn().Err(err).Str("code", e.Code().String()).Str("field", e.Field()).Msg("document rejected")
	return out, err
}

// IngestBatch ingests docs independently with bounded parallelism.
// One failed document never discards the others
func (s *Service) IngestBatch(ctx context.Context, docs []attendance.RawDocument) domain.BatchResult {
	jobs := make([]job, len(docs))
	for i, doc := range docs {
		jobs[i] = job{name: doc.Header.SourceFile, run: func(ctx context.Context) domain.Outcome {
			out, _ := s.IngestDocument(ctx, doc)
			return out
		}}
	}
	return s.run(ctx, jobs)
}

// IngestFiles extracts and ingests source files. A file the extractors cannot
// read fails on its own, like any other bad document
func (s *Service) IngestFiles(ctx context.Context, files []domain.File) domain.BatchResult {
	jobs := make([]job, len(files))
	for i, f := range files {
		jobs[i] = job{name: f.Name, run: func(ctx context.Context) domain.Outcome {
			doc, err := extract.FromBytes(f.Name, f.Data)
			if err != nil {
				out, _ := s.fail(logger.WithDocument(ctx, f.Name), domain.Outcome{SourceFile: f.Name, Status: domain.StatusFailed}, err)
				return out
			}
			out, _ := s.IngestDocument(ctx, doc)
			return out
		}}
	}
	return s.run(ctx, jobs)
}

type job struct {
	name string
	run  func(context.Context) domain.Outcome
}

func (s *Service) run(ctx context.Context, jobs []job) domain.BatchResult {
	batchID := pnet.BatchID(ctx)
	if batchID == "" {
		batchID = s.NewID()
		ctx = logger.WithRequest(ctx, "", batchID)
	}

	res := domain.BatchResult{BatchID: batchID, Outcomes: make([]domain.Outcome, len(jobs))}
	start := time.Now()

	var g errgroup.Group
	g.SetLimit(max(s.Cfg.Workers, 1))
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				res.Outcomes[i], _ = s.fail(logger.WithDocument(ctx, j.name),
					domain.Outcome{SourceFile: j.name, Status: domain.StatusFailed},
					perr.Wrap(err, perr.ErrorCodeUnavailable, "batch cancelled"))
				return nil
			}
			res.Outcomes[i] = j.run(ctx)
			return nil
		})
	}
	_ = g.Wait()

	for _, o := range res.Outcomes {
		if o.Status == domain.StatusOK {
			res.Ingested++
		} else {
			res.Failed++
		}
	}
	logger.C(ctx).Info().
		Int("documents", len(jobs)).
		Int("ingested", res.Ingested).
		Int("failed", res.Failed).
		Dur("took", time.Since(start)).
		Msg("batch ingested")
	return res
}
