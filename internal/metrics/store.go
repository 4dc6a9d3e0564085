package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Store collects dashboard metrics in its own prometheus registry.
type Store struct {
	registry *prometheus.Registry

	fetches      *prometheus.CounterVec
	fetchLatency *prometheus.HistogramVec
	dispatches   *prometheus.CounterVec
	renders      *prometheus.CounterVec
}

// NewStore creates the collectors and registers them.
func NewStore() *Store {
	registry := prometheus.NewRegistry()

	fetches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_fetches_total",
			Help: "Backend fetches issued, by slot and outcome",
		},
		[]string{"slot", "outcome"},
	)

	fetchLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_fetch_duration_seconds",
			Help:    "Time taken by backend fetches",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"slot"},
	)

	dispatches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_dispatched_actions_total",
			Help: "Actions submitted to the store, by type and whether they changed state",
		},
		[]string{"type", "applied"},
	)

	renders := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_renders_total",
			Help: "Dashboard renders, by observed state",
		},
		[]string{"state"},
	)

	registry.MustRegister(fetches, fetchLatency, dispatches, renders)

	return &Store{
		registry:     registry,
		fetches:      fetches,
		fetchLatency: fetchLatency,
		dispatches:   dispatches,
		renders:      renders,
	}
}

// Registry exposes the registry for the /metrics handler.
func (s *Store) Registry() *prometheus.Registry {
	return s.registry
}

// RecordFetch records a completed backend fetch.
func (s *Store) RecordFetch(slot string, latency time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.fetches.WithLabelValues(slot, outcome).Inc()
	s.fetchLatency.WithLabelValues(slot).Observe(latency.Seconds())
}

// RecordDispatch records an action submitted to the store.
func (s *Store) RecordDispatch(actionType string, applied bool) {
	label := "false"
	if applied {
		label = "true"
	}
	s.dispatches.WithLabelValues(actionType, label).Inc()
}

// RecordRender records the state a dashboard render observed.
func (s *Store) RecordRender(state string) {
	s.renders.WithLabelValues(state).Inc()
}
