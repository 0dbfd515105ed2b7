package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the verification module.
type Metrics struct {
	// Completed runs by result ("ok", "config_error", "commit_error")
	RunsTotal *prometheus.CounterVec

	// Per-product outcomes by final status
	OutcomesTotal *prometheus.CounterVec

	// Full run duration including the batch commit
	RunDuration prometheus.Histogram

	// Narrative service call latency by result ("ok", "error")
	NarrativeLatency *prometheus.HistogramVec
}

// New creates a new Metrics instance with all verification metrics registered.
func New() *Metrics {
	return &Metrics{
		RunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "veripass_verification_runs_total",
			Help: "Total verification runs by result",
		}, []string{"result"}),

		OutcomesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "veripass_verification_outcomes_total",
			Help: "Total per-product verification outcomes by final status",
		}, []string{"status"}),

		RunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "veripass_verification_run_duration_seconds",
			Help:    "Duration of full verification runs including the batch commit",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),

		NarrativeLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "veripass_narrative_call_duration_seconds",
			Help:    "Duration of narrative verifier calls by result",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"result"}),
	}
}

// IncRun records a completed run.
func (m *Metrics) IncRun(result string) {
	if m != nil {
		m.RunsTotal.WithLabelValues(result).Inc()
	}
}

// IncOutcome records a per-product outcome.
func (m *Metrics) IncOutcome(status string) {
	if m != nil {
		m.OutcomesTotal.WithLabelValues(status).Inc()
	}
}

// ObserveRunDuration records the total run duration.
func (m *Metrics) ObserveRunDuration(d time.Duration) {
	if m != nil {
		m.RunDuration.Observe(d.Seconds())
	}
}

// ObserveNarrativeLatency records one narrative service call.
func (m *Metrics) ObserveNarrativeLatency(result string, d time.Duration) {
	if m != nil {
		m.NarrativeLatency.WithLabelValues(result).Observe(d.Seconds())
	}
}
