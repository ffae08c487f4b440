package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pontual/internal/core/attendance"
	"pontual/internal/core/namecheck"
	perr "pontual/internal/platform/errors"
	"pontual/internal/services/audit/domain"
	"pontual/internal/services/audit/export"
	recdom "pontual/internal/services/records/domain"

	"github.com/go-chi/chi/v5"
)

type fakeAudit struct {
	filter recdom.Filter
	err    error
}

func (f *fakeAudit) Run(_ context.Context, flt recdom.Filter) (domain.Report, error) {
	f.filter = flt
	if f.err != nil {
		return domain.Report{}, f.err
	}
	rep := domain.Report{RunID: "run-1"}
	if !flt.Period.IsZero() {
		rep.Period = flt.Period.String()
	}
	return rep, nil
}

func (f *fakeAudit) Duplicates(_ context.Context, flt recdom.Filter) (domain.Duplicates, error) {
	f.filter = flt
	return domain.Duplicates{StaleRecords: 2}, f.err
}

func (f *fakeAudit) ClassifyNames(names []string) []namecheck.Verdict {
	out := make([]namecheck.Verdict, len(names))
	for i, n := range names {
		out[i] = namecheck.Verdict{Name: n}
	}
	return out
}

func serve(s domain.AuditPort, method, path, body string) *httptest.ResponseRecorder {
	mux := chi.NewRouter()
	Register(mux, s)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestReport_PassesFilter(t *testing.T) {
	fake := &fakeAudit{}
	rec := serve(fake, stdhttp.MethodPost, "/report", `{"period":"07/2025","employee":"Ana Lima"}`)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if fake.filter.Period != attendance.MustPeriod("07/2025") || fake.filter.Employee != "Ana Lima" {
		t.Fatalf("filter = %+v", fake.filter)
	}
	var env struct {
		Data domain.Report `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil || env.Data.RunID != "run-1" {
		t.Fatalf("decode: %v %+v", err, env)
	}
}

func TestReport_BadPeriod(t *testing.T) {
	rec := serve(&fakeAudit{}, stdhttp.MethodPost, "/report", `{"period":"2025-07"}`)
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDuplicates_ServiceErrorMapsStatus(t *testing.T) {
	rec := serve(&fakeAudit{err: perr.Unavailablef("down")}, stdhttp.MethodPost, "/duplicates", `{}`)
	if rec.Code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestNames(t *testing.T) {
	rec := serve(&fakeAudit{}, stdhttp.MethodPost, "/names", `{"names":["Ana Lima","Jo"]}`)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var env struct {
		Data []namecheck.Verdict `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil || len(env.Data) != 2 {
		t.Fatalf("decode: %v %+v", err, env)
	}

	if rec := serve(&fakeAudit{}, stdhttp.MethodPost, "/names", `{"names":[]}`); rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("empty names status = %d, want 400", rec.Code)
	}
}

func TestWorkbook(t *testing.T) {
	rec := serve(&fakeAudit{}, stdhttp.MethodGet, "/report.xlsx?period=07/2025", "")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != export.ContentType {
		t.Fatalf("content type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "pontual-audit-07-2025.xlsx") {
		t.Fatalf("disposition = %q", cd)
	}
	if rec.Body.Len() == 0 {
		t.Fatalf("empty workbook")
	}

	if rec := serve(&fakeAudit{}, stdhttp.MethodGet, "/report.xlsx?period=13/2025", ""); rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("bad period status = %d, want 422", rec.Code)
	}
}
