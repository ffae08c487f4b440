// Package http provides http transport for ingestion
package http

import (
	stdhttp "net/http"

	"pontual/internal/adapters/extract"
	"pontual/internal/modkit/httpkit"
	"pontual/internal/services/ingest/domain"
)

// Register mounts ingest endpoints on the given router
func Register(r httpkit.Router, s domain.IngestPort, maxUpload int64) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.BatchInput](r, "/documents", h.documents)
	httpkit.PostUpload(r, "/uploads", httpkit.UploadOptions{
		Field:    "documents",
		MaxBytes: maxUpload,
		Exts:     extract.Exts,
	}, h.uploads)
}

type handlers struct{ svc domain.IngestPort }

// swagger:route POST /ingest/documents Ingest ingestDocuments
// @Summary Ingest already-extracted attendance documents
// @Description Each document is normalized, aggregated and stored on its own; a bad document never fails the batch
// @Tags Ingest
// @Accept json
// @Produce json
// @Param X-Batch-ID header string false "Client batch id echoed in the result"
// @Param payload body domain.BatchInput true "Documents"
// @Success 200 {object} domain.BatchResult "per-document outcomes"
// @Router /ingest/documents [post]
func (h *handlers) documents(r *stdhttp.Request, in domain.BatchInput) (any, error) {
	return h.svc.IngestBatch(r.Context(), in.Documents), nil
}

// swagger:route POST /ingest/uploads Ingest ingestUploads
// @Summary Upload timesheet files (.xlsx, .pdf, .json) for extraction and ingestion
// @Tags Ingest
// @Accept multipart/form-data
// @Produce json
// @Param documents formData file true "Timesheet files"
// @Success 200 {object} domain.BatchResult "per-document outcomes"
// @Router /ingest/uploads [post]
func (h *handlers) uploads(r *stdhttp.Request, files []httpkit.Upload) (any, error) {
	in := make([]domain.File, len(files))
	for i, f := range files {
		in[i] = domain.File{Name: f.Name, Data: f.Data}
	}
	return h.svc.IngestFiles(r.Context(), in), nil
}
