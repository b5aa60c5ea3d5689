// Package metrics provides Prometheus instrumentation for goretry components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for goretry components.
type Registry struct {
	// Retry Queue Metrics
	QueueItems      *prometheus.GaugeVec
	Registrations   *prometheus.CounterVec
	Attempts        *prometheus.CounterVec
	AttemptFailures *prometheus.CounterVec
	Completions     *prometheus.CounterVec
	Reschedules     *prometheus.CounterVec
	BackoffInterval *prometheus.GaugeVec
}

// DefaultRegistry is the default metrics registry used by goretry components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		QueueItems: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "goretry",
				Subsystem: "queue",
				Name:      "items",
				Help:      "Number of items currently queued",
			},
			[]string{"queue_name"},
		),

		Registrations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goretry",
				Subsystem: "queue",
				Name:      "registrations_total",
				Help:      "Total number of registration calls",
			},
			[]string{"queue_name"},
		),

		Attempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goretry",
				Subsystem: "queue",
				Name:      "attempts_total",
				Help:      "Total number of operation attempts",
			},
			[]string{"queue_name"},
		),

		AttemptFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goretry",
				Subsystem: "queue",
				Name:      "attempt_failures_total",
				Help:      "Total number of failed operation attempts",
			},
			[]string{"queue_name"},
		),

		Completions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goretry",
				Subsystem: "queue",
				Name:      "completions_total",
				Help:      "Total number of operations completed successfully",
			},
			[]string{"queue_name"},
		),

		Reschedules: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goretry",
				Subsystem: "queue",
				Name:      "reschedules_total",
				Help:      "Total number of retry timer armings",
			},
			[]string{"queue_name"},
		),

		BackoffInterval: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "goretry",
				Subsystem: "queue",
				Name:      "backoff_interval_seconds",
				Help:      "Interval the most recent timer arming will wait",
			},
			[]string{"queue_name"},
		),
	}
}
