// Package metrics exposes Prometheus counters for the import pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ImportMetrics counts pipeline outcomes per import source. A nil
// *ImportMetrics is valid and records nothing, so tests and tools that do
// not scrape can skip the registry entirely.
type ImportMetrics struct {
	imported   *prometheus.CounterVec
	duplicates *prometheus.CounterVec
	failed     *prometheus.CounterVec
	batches    *prometheus.CounterVec
}

// NewImportMetrics registers the pipeline counters on reg.
func NewImportMetrics(reg prometheus.Registerer) *ImportMetrics {
	m := &ImportMetrics{
		imported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statement_ingest_transactions_imported_total",
			Help: "Transactions accepted and persisted, by import source.",
		}, []string{"source"}),
		duplicates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statement_ingest_duplicates_skipped_total",
			Help: "Candidates skipped because their fingerprint already existed.",
		}, []string{"source"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statement_ingest_candidates_failed_total",
			Help: "Candidates rejected by a row-level error.",
		}, []string{"source"}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statement_ingest_batches_total",
			Help: "Import batches finalized, by source and terminal status.",
		}, []string{"source", "status"}),
	}
	reg.MustRegister(m.imported, m.duplicates, m.failed, m.batches)
	return m
}

func (m *ImportMetrics) Imported(source string, n int) {
	if m == nil {
		return
	}
	m.imported.WithLabelValues(source).Add(float64(n))
}

func (m *ImportMetrics) Duplicates(source string, n int) {
	if m == nil {
		return
	}
	m.duplicates.WithLabelValues(source).Add(float64(n))
}

func (m *ImportMetrics) Failed(source string, n int) {
	if m == nil {
		return
	}
	m.failed.WithLabelValues(source).Add(float64(n))
}

func (m *ImportMetrics) BatchFinalized(source, status string) {
	if m == nil {
		return
	}
	m.batches.WithLabelValues(source, status).Inc()
}
