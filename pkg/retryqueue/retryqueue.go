package retryqueue

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	qerrors "github.com/vnykmshr/goretry/pkg/common/errors"
	"github.com/vnykmshr/goretry/pkg/connectivity"
)

// Operation is a unit of deferred work. It is attempted on every firing
// of the queue's timer until it returns nil.
type Operation func(ctx context.Context) error

// CompletionFunc is invoked exactly once when the operation registered
// under id completes successfully. It is never invoked on failure or
// disposal.
type CompletionFunc func(id string)

// Queue defers registered work until network connectivity is available
// and retries it with a shared exponential backoff.
type Queue interface {
	// Register stores op under id unless id is already queued; an
	// existing entry is never overwritten. Every call, duplicate or
	// not, probes the connectivity monitor and lazily subscribes to
	// its change stream. Register returns once that priming step is
	// done; it never waits for op itself to run.
	Register(id string, op Operation, opts ...RegisterOption) error

	// Cancel removes a queued item without running it. Its completion
	// callback is discarded. Returns true if the item was queued.
	Cancel(id string) bool

	// Pending returns the queued ids in registration order.
	Pending() []string

	// Len returns the number of queued items.
	Len() int

	// Interval returns the backoff interval the next timer arming will
	// use.
	Interval() time.Duration

	// Dispose discards all queued items and callbacks, cancels the
	// timer and the connectivity subscription. In-flight operations
	// from the last firing finish naturally; their results are
	// discarded. Idempotent.
	Dispose()
}

// Config holds queue configuration.
type Config struct {
	// Monitor supplies connectivity state. Required.
	Monitor connectivity.Monitor

	// MinInterval is the backoff interval for the first firing of a
	// fresh cycle. Must be positive; defaults to 1 second.
	MinInterval time.Duration

	// MaxInterval caps the backoff interval. Defaults to 30 minutes;
	// raised to MinInterval if smaller.
	MaxInterval time.Duration

	// Policy classifies connectivity reports as usable. Defaults to
	// connectivity.FirstKind.
	Policy connectivity.Policy

	// Logger receives operation and probe failures. If nil, they are
	// discarded.
	Logger *slog.Logger

	// OnAttempt is called after every operation attempt with the item
	// id and the attempt's error (nil on success). Hooks run
	// synchronously on the firing goroutine and must not call back
	// into the queue.
	OnAttempt func(id string, err error)

	// OnSchedule is called whenever the timer is armed, with the
	// interval the pending firing will wait. Same calling rules as
	// OnAttempt.
	OnSchedule func(interval time.Duration)
}

const (
	defaultMinInterval = time.Second
	defaultMaxInterval = 30 * time.Minute
)

type item struct {
	id         string
	op         Operation
	onComplete CompletionFunc
}

type queue struct {
	cfg    Config
	logger *slog.Logger
	policy connectivity.Policy

	mu          sync.Mutex
	items       map[string]*item
	order       []string
	interval    time.Duration
	timer       *time.Timer
	firing      bool
	subscribed  bool
	unsubscribe func()
	disposed    bool
}

// New creates a queue with default configuration around the given
// monitor.
func New(monitor connectivity.Monitor) (Queue, error) {
	return NewWithConfig(Config{Monitor: monitor})
}

// NewWithConfig creates a queue with custom configuration. Interval
// values outside their valid range are replaced with defaults so the
// timer period is always positive.
func NewWithConfig(cfg Config) (Queue, error) {
	if cfg.Monitor == nil {
		return nil, fmt.Errorf("%w: monitor cannot be nil", qerrors.ErrInvalidConfiguration)
	}

	if cfg.MinInterval <= 0 {
		cfg.MinInterval = defaultMinInterval
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = defaultMaxInterval
	}
	if cfg.MaxInterval < cfg.MinInterval {
		cfg.MaxInterval = cfg.MinInterval
	}

	policy := cfg.Policy
	if policy == nil {
		policy = connectivity.FirstKind
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &queue{
		cfg:      cfg,
		logger:   logger,
		policy:   policy,
		items:    make(map[string]*item),
		interval: cfg.MinInterval,
	}, nil
}

func (q *queue) Register(id string, op Operation, opts ...RegisterOption) error {
	if id == "" {
		return fmt.Errorf("item ID cannot be empty")
	}
	if op == nil {
		return fmt.Errorf("operation cannot be nil")
	}

	var rc registerConfig
	for _, opt := range opts {
		opt(&rc)
	}

	q.mu.Lock()
	if q.disposed {
		q.mu.Unlock()
		return fmt.Errorf("cannot register %q: %w", id, qerrors.ErrDisposed)
	}
	if _, exists := q.items[id]; !exists {
		q.items[id] = &item{id: id, op: op, onComplete: rc.onComplete}
		q.order = append(q.order, id)
	}
	needSubscribe := !q.subscribed
	if needSubscribe {
		q.subscribed = true
	}
	q.mu.Unlock()

	// Prime the connectivity source. The result is informational; a
	// probe failure must not block the subscription step.
	if _, err := q.cfg.Monitor.Check(context.Background()); err != nil {
		q.logger.Debug("connectivity probe failed", "id", id, "error", err)
	}

	if needSubscribe {
		events, cancel := q.cfg.Monitor.Subscribe()
		q.mu.Lock()
		if q.disposed {
			q.mu.Unlock()
			cancel()
			return nil
		}
		q.unsubscribe = cancel
		q.mu.Unlock()
		go q.watch(events)
	}
	return nil
}

func (q *queue) Cancel(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.removeLocked(id) != nil
}

func (q *queue) Pending() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	ids := make([]string, len(q.order))
	copy(ids, q.order)
	return ids
}

func (q *queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *queue) Interval() time.Duration {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.interval
}

func (q *queue) Dispose() {
	q.mu.Lock()
	if q.disposed {
		q.mu.Unlock()
		return
	}
	q.disposed = true
	q.items = make(map[string]*item)
	q.order = nil
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
	unsubscribe := q.unsubscribe
	q.unsubscribe = nil
	q.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// watch consumes the connectivity stream until the subscription is
// canceled.
func (q *queue) watch(events <-chan []connectivity.Kind) {
	for kinds := range events {
		q.onConnectivityChange(kinds)
	}
}

func (q *queue) onConnectivityChange(kinds []connectivity.Kind) {
	usable := q.policy(kinds)

	q.mu.Lock()
	defer q.mu.Unlock()

	if !usable || q.disposed {
		return
	}
	if q.timer != nil || q.firing {
		// A retry cycle is already in progress.
		return
	}
	if len(q.items) == 0 {
		return
	}

	q.interval = q.cfg.MinInterval
	q.armTimerLocked()
}

// armTimerLocked schedules the next firing after the current interval,
// then doubles the interval (capped) for the next arming decision.
func (q *queue) armTimerLocked() {
	if q.timer != nil {
		q.timer.Stop()
	}
	d := q.interval
	q.timer = time.AfterFunc(d, q.fire)
	if q.cfg.OnSchedule != nil {
		q.cfg.OnSchedule(d)
	}

	q.interval *= 2
	if q.interval > q.cfg.MaxInterval {
		q.interval = q.cfg.MaxInterval
	}
}

// fire attempts every queued item once, sequentially, in registration
// order. The key set is captured at firing time; registrations during
// the pass wait for the next one.
func (q *queue) fire() {
	q.mu.Lock()
	if q.disposed {
		q.mu.Unlock()
		return
	}
	q.firing = true
	q.timer = nil
	snapshot := make([]*item, 0, len(q.order))
	for _, id := range q.order {
		snapshot = append(snapshot, q.items[id])
	}
	q.mu.Unlock()

	for _, it := range snapshot {
		err := q.attempt(it)
		if q.cfg.OnAttempt != nil {
			q.cfg.OnAttempt(it.id, err)
		}
		if err != nil {
			q.logger.Warn("operation failed, will retry", "id", it.id, "error", err)
			continue
		}

		q.mu.Lock()
		onComplete := q.removeLocked(it.id)
		q.mu.Unlock()

		// removeLocked returns nil if the item vanished meanwhile
		// (canceled or disposed); the callback must not run then.
		if onComplete != nil {
			onComplete(it.id)
		}
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	q.firing = false
	if q.disposed || len(q.items) == 0 {
		// Idle. The next usable connectivity event starts a fresh
		// cycle from the minimum interval.
		return
	}
	q.armTimerLocked()
}

// attempt runs a single operation, converting panics into errors so a
// misbehaving operation cannot take the queue down.
func (q *queue) attempt(it *item) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("operation panicked: %v\nStack trace:\n%s", r, debug.Stack())
		}
	}()
	return it.op(context.Background())
}

// removeLocked deletes an item and returns its completion callback, or
// a non-nil sentinel for items without one. A nil return means the item
// was not queued. Callers hold q.mu.
func (q *queue) removeLocked(id string) CompletionFunc {
	it, ok := q.items[id]
	if !ok {
		return nil
	}
	delete(q.items, id)
	for i, oid := range q.order {
		if oid == id {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
	if it.onComplete == nil {
		return func(string) {}
	}
	return it.onComplete
}
