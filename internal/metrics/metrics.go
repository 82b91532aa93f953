// Package metrics exposes the Prometheus instrumentation for the score ledger.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LedgerMetrics counts ledger activity by outcome.
type LedgerMetrics struct {
	registry *prometheus.Registry

	Submissions      *prometheus.CounterVec
	CleanupDeletions prometheus.Counter
	TopDeliveries    prometheus.Counter
}

// NewLedgerMetrics registers the ledger collectors on a fresh registry.
func NewLedgerMetrics() *LedgerMetrics {
	registry := prometheus.NewRegistry()

	m := &LedgerMetrics{
		registry: registry,
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoreboard",
			Name:      "submissions_total",
			Help:      "Score submissions by outcome.",
		}, []string{"outcome"}),
		CleanupDeletions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scoreboard",
			Name:      "cleanup_deleted_rows_total",
			Help:      "Duplicate rows removed by the cleanup pass.",
		}),
		TopDeliveries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scoreboard",
			Name:      "top_deliveries_total",
			Help:      "Leaderboard snapshots delivered to subscribers.",
		}),
	}

	registry.MustRegister(m.Submissions, m.CleanupDeletions, m.TopDeliveries)
	return m
}

// RecordSubmission bumps the submissions counter for one outcome.
func (m *LedgerMetrics) RecordSubmission(outcome string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome).Inc()
}

// RecordCleanupDeletions adds removed-row counts from a cleanup pass.
func (m *LedgerMetrics) RecordCleanupDeletions(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.CleanupDeletions.Add(float64(n))
}

// RecordTopDelivery bumps the subscriber fanout counter.
func (m *LedgerMetrics) RecordTopDelivery() {
	if m == nil {
		return
	}
	m.TopDeliveries.Inc()
}

// Handler serves the registry in Prometheus exposition format.
func (m *LedgerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
