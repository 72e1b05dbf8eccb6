// Package metrics instruments the draft service with Prometheus counters.
// All methods are nil-safe so the engine packages can run without a
// registry, e.g. in tests or embedded use.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters the draft service increments.
type Metrics struct {
	draftsOpened prometheus.Counter
	draftsClosed prometheus.Counter
	openDrafts   prometheus.Gauge
	mutations    *prometheus.CounterVec
}

// New registers the counters on reg and returns the handle. Pass
// prometheus.DefaultRegisterer for the process-wide registry.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		draftsOpened: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "divvy_drafts_opened_total",
			Help: "Number of draft expenses opened.",
		}),
		draftsClosed: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "divvy_drafts_closed_total",
			Help: "Number of draft expenses closed or discarded.",
		}),
		openDrafts: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "divvy_open_drafts",
			Help: "Draft expenses currently open.",
		}),
		mutations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "divvy_draft_mutations_total",
			Help: "Engine mutations applied, by operation.",
		}, []string{"op"}),
	}
}

// DraftOpened records a newly opened draft.
func (m *Metrics) DraftOpened() {
	if m == nil {
		return
	}
	m.draftsOpened.Inc()
	m.openDrafts.Inc()
}

// DraftClosed records a closed draft.
func (m *Metrics) DraftClosed() {
	if m == nil {
		return
	}
	m.draftsClosed.Inc()
	m.openDrafts.Dec()
}

// Mutation records one applied engine mutation.
func (m *Metrics) Mutation(op string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(op).Inc()
}
