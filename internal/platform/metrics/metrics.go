// Package metrics owns the process prometheus registry and the counters the
// ingest and audit paths report to. A nil *Metrics is a valid no-op sink
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pontual"

// Document outcome labels
const (
	DocumentOK     = "ok"
	DocumentFailed = "failed"
)

// Metrics groups every collector registered by the process
type Metrics struct {
	reg *prometheus.Registry

	documents       *prometheus.CounterVec
	rowsRejected    *prometheus.CounterVec
	recordsStored   prometheus.Counter
	duplicateGroups prometheus.Gauge
	suspiciousNames prometheus.Gauge
	auditDuration   prometheus.Histogram
	httpDuration    *prometheus.HistogramVec
}

// New builds a fresh registry with Go and process collectors attached
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		reg: reg,
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Source documents ingested, by outcome.",
		}, []string{"status"}),
		rowsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_rejected_total",
			Help:      "Day rows rejected during normalization, by error kind.",
		}, []string{"kind"}),
		recordsStored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_stored_total",
			Help:      "Period records appended to the record store.",
		}),
		duplicateGroups: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "audit",
			Name:      "duplicate_groups",
			Help:      "Duplicate (employee, period) groups found by the last audit run.",
		}),
		suspiciousNames: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "audit",
			Name:      "suspicious_names",
			Help:      "Distinct employee names flagged by the last audit run.",
		}),
		auditDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "audit",
			Name:      "run_seconds",
			Help:      "Wall time of audit runs.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_seconds",
			Help:      "HTTP request latency, by method and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "code"}),
	}
	reg.MustRegister(
		m.documents, m.rowsRejected, m.recordsStored,
		m.duplicateGroups, m.suspiciousNames, m.auditDuration, m.httpDuration,
	)
	return m
}

// Registry exposes the underlying registry for tests and custom collectors
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Document counts one ingested document with its outcome
func (m *Metrics) Document(ok bool) {
	if m == nil {
		return
	}
	status := DocumentOK
	if !ok {
		status = DocumentFailed
	}
	m.documents.WithLabelValues(status).Inc()
}

// RowsRejected adds n rejected rows under kind ("malformed", "out_of_range", "empty_period")
func (m *Metrics) RowsRejected(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.rowsRejected.WithLabelValues(kind).Add(float64(n))
}

// RecordsStored adds n appended records
func (m *Metrics) RecordsStored(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.recordsStored.Add(float64(n))
}

// Audit records the outcome of one audit run
func (m *Metrics) Audit(duplicateGroups, suspiciousNames int, took time.Duration) {
	if m == nil {
		return
	}
	m.duplicateGroups.Set(float64(duplicateGroups))
	m.suspiciousNames.Set(float64(suspiciousNames))
	m.auditDuration.Observe(took.Seconds())
}

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Instrument is an http middleware observing request latency
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return promhttp.InstrumentHandlerDuration(m.httpDuration, next)
}
