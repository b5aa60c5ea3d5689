package connectivity

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// PollingConfig holds configuration for a PollingMonitor.
type PollingConfig struct {
	// Probe determines the current state on each poll. Required.
	Probe Probe

	// CronSpec is an optional cron expression (with a seconds field)
	// that drives the poll schedule. When set, Interval is ignored.
	CronSpec string

	// Interval is the time between polls. Defaults to 30 seconds.
	Interval time.Duration

	// ProbeTimeout bounds each individual probe. Defaults to 10 seconds.
	ProbeTimeout time.Duration

	// Logger receives probe failures. If nil, they are discarded.
	Logger *slog.Logger
}

// PollingMonitor adapts a Probe into a Monitor by polling it on a fixed
// interval or a cron schedule, publishing an event only when the
// reported state differs from the previous poll.
type PollingMonitor struct {
	probe        Probe
	interval     time.Duration
	probeTimeout time.Duration
	schedule     cron.Schedule
	logger       *slog.Logger
	bc           *broadcaster

	mu      sync.Mutex
	current []Kind
	done    chan struct{}
	running bool
}

// NewPollingMonitor creates a polling monitor from the given
// configuration. The monitor reports [None] until its first poll; call
// Start to begin polling.
func NewPollingMonitor(cfg PollingConfig) (*PollingMonitor, error) {
	if cfg.Probe == nil {
		return nil, fmt.Errorf("probe cannot be nil")
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	probeTimeout := cfg.ProbeTimeout
	if probeTimeout <= 0 {
		probeTimeout = 10 * time.Second
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var schedule cron.Schedule
	if cfg.CronSpec != "" {
		parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
		var err error
		schedule, err = parser.Parse(cfg.CronSpec)
		if err != nil {
			return nil, fmt.Errorf("invalid cron expression: %w", err)
		}
	}

	return &PollingMonitor{
		probe:        cfg.Probe,
		interval:     interval,
		probeTimeout: probeTimeout,
		schedule:     schedule,
		logger:       logger,
		bc:           newBroadcaster(),
		current:      []Kind{None},
	}, nil
}

// Start begins polling in a background goroutine. The first poll runs
// immediately.
func (m *PollingMonitor) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return fmt.Errorf("polling monitor already running, call Stop() first")
	}
	m.running = true
	m.done = make(chan struct{})

	go m.run(m.done)
	return nil
}

// Stop halts polling. Subscriptions stay live and resume receiving
// events if the monitor is started again. Idempotent.
func (m *PollingMonitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		m.running = false
		close(m.done)
	}
}

// Check polls immediately, updates the current state, and publishes it
// to all subscribers.
func (m *PollingMonitor) Check(ctx context.Context) ([]Kind, error) {
	ctx, cancel := context.WithTimeout(ctx, m.probeTimeout)
	defer cancel()

	kinds, err := m.probe.Probe(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.current = cloneKinds(kinds)
	m.mu.Unlock()

	m.bc.publish(kinds)
	return kinds, nil
}

// Subscribe implements Monitor.
func (m *PollingMonitor) Subscribe() (<-chan []Kind, func()) {
	m.mu.Lock()
	current := cloneKinds(m.current)
	m.mu.Unlock()
	return m.bc.subscribe(current)
}

func (m *PollingMonitor) run(done chan struct{}) {
	m.poll()

	for {
		timer := time.NewTimer(m.untilNext())
		select {
		case <-done:
			timer.Stop()
			return
		case <-timer.C:
			m.poll()
		}
	}
}

// untilNext returns the delay before the next poll, honoring the cron
// schedule when one is configured.
func (m *PollingMonitor) untilNext() time.Duration {
	if m.schedule == nil {
		return m.interval
	}
	now := time.Now()
	d := m.schedule.Next(now).Sub(now)
	if d <= 0 {
		d = time.Second
	}
	return d
}

// poll probes once and publishes the result if the state changed.
func (m *PollingMonitor) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), m.probeTimeout)
	defer cancel()

	kinds, err := m.probe.Probe(ctx)
	if err != nil {
		m.logger.Debug("connectivity probe failed", "error", err)
		return
	}

	m.mu.Lock()
	changed := !sameKinds(m.current, kinds)
	if changed {
		m.current = cloneKinds(kinds)
	}
	m.mu.Unlock()

	if changed {
		m.bc.publish(kinds)
	}
}
