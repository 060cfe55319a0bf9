// Package metrics exposes prometheus counters for the billing pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Export outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Billing holds billing pipeline counters. A nil *Billing is valid and records nothing.
type Billing struct {
	fetches   *prometheus.CounterVec
	fallbacks prometheus.Counter
	exports   *prometheus.CounterVec
	stale     prometheus.Counter
}

// New registers the billing counters with registerer. A nil registerer uses
// the prometheus default registry.
func New(registerer prometheus.Registerer) *Billing {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Billing{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medibill_invoice_fetches_total",
			Help: "Invoice list fetches by the source that populated the board.",
		}, []string{"source"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "medibill_invoice_fallbacks_total",
			Help: "Invoice list fetches that failed and fell back to the sample dataset.",
		}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medibill_invoice_exports_total",
			Help: "Invoice exports by format and outcome.",
		}, []string{"format", "outcome"}),
		stale: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "medibill_invoice_stale_refreshes_total",
			Help: "Completed refreshes discarded because a newer one was already applied.",
		}),
	}
	registerer.MustRegister(m.fetches, m.fallbacks, m.exports, m.stale)
	return m
}

// RecordFetch counts a list fetch that populated the board from source.
func (m *Billing) RecordFetch(source string) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(source).Inc()
}

// RecordFallback counts a failed fetch replaced by the sample dataset.
func (m *Billing) RecordFallback() {
	if m == nil {
		return
	}
	m.fallbacks.Inc()
}

// RecordExport counts an export attempt.
func (m *Billing) RecordExport(format string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.exports.WithLabelValues(format, outcome).Inc()
}

// RecordStale counts a refresh result dropped by the board.
func (m *Billing) RecordStale() {
	if m == nil {
		return
	}
	m.stale.Inc()
}
