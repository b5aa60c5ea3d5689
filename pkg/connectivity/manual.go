package connectivity

import (
	"context"
	"sync"
)

// ManualMonitor is an in-memory Monitor whose state is driven by the
// caller. It is intended for tests and for applications that learn
// about connectivity through their own channels (a push notification,
// an operator toggle) rather than by probing.
type ManualMonitor struct {
	bc *broadcaster

	mu       sync.Mutex
	current  []Kind
	checkErr error
}

// NewManualMonitor creates a monitor reporting the given initial kinds.
// With no arguments the initial state is [None].
func NewManualMonitor(initial ...Kind) *ManualMonitor {
	if len(initial) == 0 {
		initial = []Kind{None}
	}
	return &ManualMonitor{
		bc:      newBroadcaster(),
		current: cloneKinds(initial),
	}
}

// Set replaces the current state and publishes it to all subscribers.
func (m *ManualMonitor) Set(kinds ...Kind) {
	m.mu.Lock()
	m.current = cloneKinds(kinds)
	m.mu.Unlock()
	m.bc.publish(kinds)
}

// SetCheckError makes subsequent Check calls fail with err. Pass nil to
// restore normal behavior. The simulated failure does not affect the
// change stream.
func (m *ManualMonitor) SetCheckError(err error) {
	m.mu.Lock()
	m.checkErr = err
	m.mu.Unlock()
}

// Check returns the current state and re-publishes it to subscribers.
func (m *ManualMonitor) Check(_ context.Context) ([]Kind, error) {
	m.mu.Lock()
	kinds := cloneKinds(m.current)
	err := m.checkErr
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	m.bc.publish(kinds)
	return kinds, nil
}

// Subscribe implements Monitor.
func (m *ManualMonitor) Subscribe() (<-chan []Kind, func()) {
	m.mu.Lock()
	current := cloneKinds(m.current)
	m.mu.Unlock()
	return m.bc.subscribe(current)
}
