// Package domain holds the ingest contracts shared by the service, http and cli layers
package domain

import (
	"pontual/internal/core/attendance"
	"pontual/internal/core/calendar"
	"pontual/internal/core/period"
	perr "pontual/internal/platform/errors"
)

// Status is the per-document ingestion result
type Status string

// Document statuses
const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// Outcome reports what happened to one source document
type Outcome struct {
	SourceFile   string           `json:"source_file"`
	EmployeeName string           `json:"employee_name,omitempty"`
	Period       string           `json:"period,omitempty"`
	RecordID     string           `json:"record_id,omitempty"`
	Status       Status           `json:"status"`
	Errors       []perr.Wire      `json:"errors,omitempty"`
	Warnings     []period.Warning `json:"warnings,omitempty"`
	Calendar     *calendar.Result `json:"calendar,omitempty"`
}

// BatchInput is the JSON body accepted by the documents endpoint
type BatchInput struct {
	Documents []attendance.RawDocument `json:"documents" validate:"required,min=1,max=500"`
}

// File is a raw source document as uploaded or read from disk
type File struct {
	Name string
	Data []byte
}

// BatchResult summarizes a batch; Outcomes keep input order
type BatchResult struct {
	BatchID  string    `json:"batch_id"`
	Ingested int       `json:"ingested"`
	Failed   int       `json:"failed"`
	Outcomes []Outcome `json:"outcomes"`
}

// OK reports whether every document of the batch was ingested
func (b BatchResult) OK() bool { return b.Failed == 0 }
