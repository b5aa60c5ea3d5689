package connectivity

import (
	"context"
	"sync"
)

// Monitor exposes a platform or synthesized connectivity source.
type Monitor interface {
	// Check performs a one-shot probe and returns the currently active
	// connection kinds. Monitors also re-publish the current state to
	// subscribers when probed, so a Check can be used to prime a fresh
	// subscription with an event.
	Check(ctx context.Context) ([]Kind, error)

	// Subscribe returns a live stream of connectivity reports. The
	// current state is delivered first, followed by an event for every
	// subsequent transition. The returned cancel function tears the
	// subscription down and closes the channel; it is safe to call more
	// than once.
	Subscribe() (<-chan []Kind, func())
}

// subscriberBuffer is the per-subscriber channel capacity. A slow
// consumer that falls this far behind loses intermediate reports; the
// latest state still arrives because transitions keep being sent.
const subscriberBuffer = 16

// broadcaster implements subscriber bookkeeping shared by the monitors
// in this package.
type broadcaster struct {
	mu     sync.Mutex
	subs   map[int]chan []Kind
	nextID int
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[int]chan []Kind)}
}

// subscribe registers a new subscriber primed with the given state.
func (b *broadcaster) subscribe(current []Kind) (<-chan []Kind, func()) {
	ch := make(chan []Kind, subscriberBuffer)
	ch <- cloneKinds(current)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// publish delivers a report to every live subscriber. Reports to a full
// subscriber buffer are dropped rather than blocking the source.
func (b *broadcaster) publish(kinds []Kind) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- cloneKinds(kinds):
		default:
		}
	}
}

func cloneKinds(kinds []Kind) []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

func sameKinds(a, b []Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
