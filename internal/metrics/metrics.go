// File: internal/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds the Prometheus collectors instrumenting the pipeline:
// per-adapter call counts and durations, and per-session
// terminal-status/outcome counts.
// It is safe to share a single Registry across goroutines; the
// underlying CounterVec/HistogramVec types are themselves concurrency-safe.
type Registry struct {
	AdapterCalls      *prometheus.CounterVec
	AdapterDuration   *prometheus.HistogramVec
	SessionOutcomes   *prometheus.CounterVec
	CandidatesCreated *prometheus.CounterVec
}

// New registers a fresh set of collectors against reg and returns the
// Registry wrapper. Pass prometheus.NewRegistry() in tests to avoid
// colliding with the global DefaultRegisterer across test runs.
func New(reg prometheus.Registerer) *Registry {
	m := &Registry{
		AdapterCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "discovery_adapter_calls_total",
			Help: "Search adapter calls by engine and outcome (ok, error).",
		}, []string{"engine", "outcome"}),
		AdapterDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "discovery_adapter_call_duration_seconds",
			Help:    "Search adapter call latency by engine.",
			Buckets: prometheus.DefBuckets,
		}, []string{"engine"}),
		SessionOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "discovery_session_outcomes_total",
			Help: "Discovery sessions by terminal status.",
		}, []string{"status"}),
		CandidatesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "discovery_candidates_created_total",
			Help: "FundingSourceCandidate rows created by confidence classification.",
		}, []string{"classification"}),
	}
	reg.MustRegister(m.AdapterCalls, m.AdapterDuration, m.SessionOutcomes, m.CandidatesCreated)
	return m
}

// ObserveAdapterCall records one search adapter call's outcome and
// duration.
func (m *Registry) ObserveAdapterCall(engine string, err error, d time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.AdapterCalls.WithLabelValues(engine, outcome).Inc()
	m.AdapterDuration.WithLabelValues(engine).Observe(d.Seconds())
}

// ObserveSessionOutcome records a DiscoverySession's terminal status.
func (m *Registry) ObserveSessionOutcome(status string) {
	m.SessionOutcomes.WithLabelValues(status).Inc()
}

// ObserveCandidatesCreated records how many candidates a session produced
// in the HIGH and LOW confidence buckets.
func (m *Registry) ObserveCandidatesCreated(high, low int) {
	if high > 0 {
		m.CandidatesCreated.WithLabelValues("high").Add(float64(high))
	}
	if low > 0 {
		m.CandidatesCreated.WithLabelValues("low").Add(float64(low))
	}
}
