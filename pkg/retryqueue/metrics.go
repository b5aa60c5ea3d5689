package retryqueue

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vnykmshr/goretry/pkg/metrics"
)

// MetricsQueue wraps a Queue with Prometheus metrics collection.
type MetricsQueue struct {
	queue    Queue
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates a queue with metrics enabled on a dedicated
// Prometheus registry.
func NewWithMetrics(cfg Config, name string) (Queue, error) {
	registry := prometheus.NewRegistry()
	return NewWithConfigAndMetrics(cfg, name, metrics.Config{
		Enabled:  true,
		Registry: registry,
	})
}

// NewWithConfigAndMetrics creates a queue with custom config and metrics.
// Attempt and scheduling metrics are collected through the config hooks;
// hooks already present in cfg keep being called.
func NewWithConfigAndMetrics(cfg Config, name string, metricsConfig metrics.Config) (Queue, error) {
	if !metricsConfig.Enabled {
		return NewWithConfig(cfg)
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	mq := &MetricsQueue{
		name:     name,
		registry: registry,
		enabled:  true,
	}

	prevAttempt := cfg.OnAttempt
	cfg.OnAttempt = func(id string, err error) {
		mq.registry.Attempts.WithLabelValues(mq.name).Inc()
		if err != nil {
			mq.registry.AttemptFailures.WithLabelValues(mq.name).Inc()
		} else {
			mq.registry.Completions.WithLabelValues(mq.name).Inc()
		}
		if prevAttempt != nil {
			prevAttempt(id, err)
		}
	}

	prevSchedule := cfg.OnSchedule
	cfg.OnSchedule = func(interval time.Duration) {
		mq.registry.Reschedules.WithLabelValues(mq.name).Inc()
		mq.registry.BackoffInterval.WithLabelValues(mq.name).Set(interval.Seconds())
		if prevSchedule != nil {
			prevSchedule(interval)
		}
	}

	queue, err := NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	mq.queue = queue
	mq.updateItems()

	return mq, nil
}

// updateItems refreshes the queued-items gauge.
func (mq *MetricsQueue) updateItems() {
	if !mq.enabled {
		return
	}
	mq.registry.QueueItems.WithLabelValues(mq.name).Set(float64(mq.queue.Len()))
}

// Register adds an item to the queue and records the registration.
func (mq *MetricsQueue) Register(id string, op Operation, opts ...RegisterOption) error {
	if mq.enabled {
		mq.registry.Registrations.WithLabelValues(mq.name).Inc()
	}

	// Wrap the completion callback so the gauge tracks removals.
	var rc registerConfig
	for _, opt := range opts {
		opt(&rc)
	}
	prevComplete := rc.onComplete
	wrapped := append(opts, WithCompletion(func(id string) {
		mq.updateItems()
		if prevComplete != nil {
			prevComplete(id)
		}
	}))

	err := mq.queue.Register(id, op, wrapped...)
	mq.updateItems()
	return err
}

// Cancel removes a queued item.
func (mq *MetricsQueue) Cancel(id string) bool {
	canceled := mq.queue.Cancel(id)
	mq.updateItems()
	return canceled
}

// Pending returns the queued ids in registration order.
func (mq *MetricsQueue) Pending() []string {
	return mq.queue.Pending()
}

// Len returns the number of queued items.
func (mq *MetricsQueue) Len() int {
	n := mq.queue.Len()
	if mq.enabled {
		mq.registry.QueueItems.WithLabelValues(mq.name).Set(float64(n))
	}
	return n
}

// Interval returns the current backoff interval.
func (mq *MetricsQueue) Interval() time.Duration {
	return mq.queue.Interval()
}

// Dispose tears the queue down.
func (mq *MetricsQueue) Dispose() {
	mq.queue.Dispose()
	mq.updateItems()
}
