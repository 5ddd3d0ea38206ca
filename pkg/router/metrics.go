package router

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome is how a transition ended.
type Outcome string

const (
	OutcomeCommitted  Outcome = "committed"
	OutcomeRedirected Outcome = "redirected"
	OutcomeStalled    Outcome = "stalled"
)

// MetricsConfig configures router metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "einblatt").
	Namespace string

	// Subsystem is the metrics subsystem (default: "router").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for guard duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures router metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "einblatt",
		Subsystem: "router",
		Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors for a router. A nil *Metrics
// records nothing.
type Metrics struct {
	Transitions   *prometheus.CounterVec
	GuardDuration prometheus.Histogram
	Guards        prometheus.Gauge
	Pending       prometheus.Gauge
}

// NewMetrics creates and registers router metrics:
//   - einblatt_router_transitions_total: transitions by outcome
//   - einblatt_router_guard_duration_seconds: synchronous guard run time
//   - einblatt_router_guards: registered guards
//   - einblatt_router_pending_transitions: walks waiting on a continuation guard
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "transitions_total",
			Help:        "Total number of navigation transitions by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		GuardDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "guard_duration_seconds",
			Help:        "Time spent running navigation guards in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		Guards: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "guards",
			Help:        "Number of registered navigation guards",
			ConstLabels: config.ConstLabels,
		}),

		Pending: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pending_transitions",
			Help:        "Transitions waiting for a continuation guard to call next",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) countTransition(o Outcome) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(string(o)).Inc()
}

func (m *Metrics) observeGuard(d time.Duration) {
	if m == nil {
		return
	}
	m.GuardDuration.Observe(d.Seconds())
}

func (m *Metrics) setGuards(n int) {
	if m == nil {
		return
	}
	m.Guards.Set(float64(n))
}

func (m *Metrics) addPending(delta float64) {
	if m == nil {
		return
	}
	m.Pending.Add(delta)
}
