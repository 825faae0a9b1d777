package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for reconciliation runs.
type Metrics struct {
	// Finished runs by outcome
	Runs *prometheus.CounterVec

	// Restriction changes by action type
	Actions *prometheus.CounterVec

	// Items evaluated by the last pass
	Items prometheus.Gauge

	// Full run latency
	RunLatency prometheus.Histogram
}

// Run outcomes.
const (
	OutcomeApplied  = "applied"
	OutcomeDryRun   = "dry_run"
	OutcomeFailed   = "failed"
	OutcomeRejected = "rejected"
)

// New creates a Metrics instance registered with reg. A nil registerer falls back to
// the default Prometheus registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "loot_restrictions_runs_total",
			Help: "Total reconciliation runs by outcome",
		}, []string{"outcome"}), // outcome: "applied", "dry_run", "failed", "rejected"

		Actions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "loot_restrictions_actions_total",
			Help: "Total restriction changes committed by action type",
		}, []string{"type"}),

		Items: factory.NewGauge(prometheus.GaugeOpts{
			Name: "loot_restrictions_items_evaluated",
			Help: "Number of items evaluated by the last reconciliation pass",
		}),

		RunLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "loot_restrictions_run_duration_seconds",
			Help:    "Duration of a full reconciliation run including the commit",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}
}

// IncrementRun records a finished run.
func (m *Metrics) IncrementRun(outcome string) {
	if m != nil {
		m.Runs.WithLabelValues(outcome).Inc()
	}
}

// AddActions records committed changes of one action type.
func (m *Metrics) AddActions(actionType string, n int) {
	if m != nil && n > 0 {
		m.Actions.WithLabelValues(actionType).Add(float64(n))
	}
}

// SetItems records the size of the last evaluated catalog.
func (m *Metrics) SetItems(n int) {
	if m != nil {
		m.Items.Set(float64(n))
	}
}

// ObserveRunLatency records the total run duration.
func (m *Metrics) ObserveRunLatency(d time.Duration) {
	if m != nil {
		m.RunLatency.Observe(d.Seconds())
	}
}
