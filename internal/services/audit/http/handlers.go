// Package http provides http transport for audits
package http

import (
	"fmt"
	stdhttp "net/http"
	"strings"

	"pontual/internal/modkit/httpkit"
	phttp "pontual/internal/platform/net/http"
	"pontual/internal/services/audit/domain"
	"pontual/internal/services/audit/export"
)

// Register mounts audit endpoints on the given router
func Register(r httpkit.Router, s domain.AuditPort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.ReportInput](r, "/report", h.report)
	httpkit.PostJSON[domain.ReportInput](r, "/duplicates", h.duplicates)
	httpkit.PostJSON[domain.NamesInput](r, "/names", h.names)
	r.Get("/report.xlsx", h.workbook)
}

type handlers struct{ svc domain.AuditPort }

// swagger:route POST /audit/report Audit auditReport
// @Summary Full audit over stored records
// @Description Duplicate groups, suspicious names, calendar findings and statistics. Nothing is modified
// @Tags Audit
// @Accept json
// @Produce json
// @Param payload body domain.ReportInput true "Period/employee filter; {} audits everything"
// @Success 200 {object} domain.Report "ok"
// @Router /audit/report [post]
func (h *handlers) report(r *stdhttp.Request, in domain.ReportInput) (any, error) {
	f, err := in.Filter()
	if err != nil {
		return nil, err
	}
	return h.svc.Run(r.Context(), f)
}

// swagger:route POST /audit/duplicates Audit auditDuplicates
// @Summary Employee/period keys ingested more than once, with the current record marked
// @Tags Audit
// @Accept json
// @Produce json
// @Param payload body domain.ReportInput true "Period/employee filter; {} audits everything"
// @Success 200 {object} domain.Duplicates "ok"
// @Router /audit/duplicates [post]
func (h *handlers) duplicates(r *stdhttp.Request, in domain.ReportInput) (any, error) {
	f, err := in.Filter()
	if err != nil {
		return nil, err
	}
	return h.svc.Duplicates(r.Context(), f)
}

// swagger:route POST /audit/names Audit auditNames
// @Summary Screen names for extraction damage
// @Tags Audit
// @Accept json
// @Produce json
// @Param payload body domain.NamesInput true "Names"
// @Success 200 {array} namecheck.Verdict "one verdict per distinct name"
// @Router /audit/names [post]
func (h *handlers) names(_ *stdhttp.Request, in domain.NamesInput) (any, error) {
	return h.svc.ClassifyNames(in.Names), nil
}

// swagger:route GET /audit/report.xlsx Audit auditWorkbook
// @Summary Audit report as an .xlsx workbook
// @Tags Audit
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param period query string false "Period as MM/YYYY"
// @Param employee query string false "Exact employee name"
// @Success 200 {file} file "workbook"
// @Router /audit/report.xlsx [get]
func (h *handlers) workbook(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	q := r.URL.Query()
	in := domain.ReportInput{Period: q.Get("period"), Employee: strings.TrimSpace(q.Get("employee"))}
	f, err := in.Filter()
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	rep, err := h.svc.Run(r.Context(), f)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	data, err := export.Bytes(rep)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	phttp.Attachment(w, export.ContentType, filename(rep), data)
}

func filename(rep domain.Report) string {
	if rep.Period == "" {
		return "pontual-audit.xlsx"
	}
	return fmt.Sprintf("pontual-audit-%s.xlsx", strings.ReplaceAll(rep.Period, "/", "-"))
}
