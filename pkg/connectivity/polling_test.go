package connectivity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// flippingProbe returns a configurable sequence of states.
type flippingProbe struct {
	mu     sync.Mutex
	states [][]Kind
	i      int
	err    error
}

func (p *flippingProbe) Probe(_ context.Context) ([]Kind, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	state := p.states[p.i]
	if p.i < len(p.states)-1 {
		p.i++
	}
	return state, nil
}

func TestPollingMonitor_RequiresProbe(t *testing.T) {
	if _, err := NewPollingMonitor(PollingConfig{}); err == nil {
		t.Error("expected error for nil probe")
	}
}

func TestPollingMonitor_InvalidCronSpec(t *testing.T) {
	probe := &flippingProbe{states: [][]Kind{{Wifi}}}
	if _, err := NewPollingMonitor(PollingConfig{Probe: probe, CronSpec: "not a cron"}); err == nil {
		t.Error("expected error for invalid cron expression")
	}
}

func TestPollingMonitor_EmitsTransitionsOnly(t *testing.T) {
	probe := &flippingProbe{states: [][]Kind{{None}, {None}, {Wifi}, {Wifi}}}
	mon, err := NewPollingMonitor(PollingConfig{
		Probe:    probe,
		Interval: 10 * time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}

	events, cancel := mon.Subscribe()
	defer cancel()

	if err := mon.Start(); err != nil {
		t.Fatal(err)
	}
	defer mon.Stop()

	// Initial subscription state, before any poll completed.
	if got := receiveKinds(t, events); !sameKinds(got, []Kind{None}) {
		t.Errorf("initial event = %v, want [none]", got)
	}

	// The repeated [none] polls are deduplicated; the next event is
	// the transition to wifi.
	if got := receiveKinds(t, events); !sameKinds(got, []Kind{Wifi}) {
		t.Errorf("transition event = %v, want [wifi]", got)
	}

	select {
	case extra := <-events:
		t.Errorf("unexpected event %v after steady state", extra)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPollingMonitor_CheckPublishes(t *testing.T) {
	probe := &flippingProbe{states: [][]Kind{{Mobile}}}
	mon, err := NewPollingMonitor(PollingConfig{Probe: probe, Interval: time.Hour})
	if err != nil {
		t.Fatal(err)
	}

	events, cancel := mon.Subscribe()
	defer cancel()
	receiveKinds(t, events) // initial [none]

	kinds, err := mon.Check(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !sameKinds(kinds, []Kind{Mobile}) {
		t.Errorf("Check() = %v, want [mobile]", kinds)
	}
	if got := receiveKinds(t, events); !sameKinds(got, []Kind{Mobile}) {
		t.Errorf("published event = %v, want [mobile]", got)
	}
}

func TestPollingMonitor_CheckError(t *testing.T) {
	probe := &flippingProbe{err: errors.New("endpoint gone")}
	mon, err := NewPollingMonitor(PollingConfig{Probe: probe, Interval: time.Hour})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := mon.Check(context.Background()); err == nil {
		t.Error("expected probe error from Check")
	}
}

func TestPollingMonitor_StartStop(t *testing.T) {
	probe := &flippingProbe{states: [][]Kind{{Wifi}}}
	mon, err := NewPollingMonitor(PollingConfig{Probe: probe, Interval: 10 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}

	if err := mon.Start(); err != nil {
		t.Fatal(err)
	}
	if err := mon.Start(); err == nil {
		t.Error("second Start should fail while running")
	}

	mon.Stop()
	mon.Stop() // idempotent

	if err := mon.Start(); err != nil {
		t.Errorf("restart after Stop failed: %v", err)
	}
	mon.Stop()
}
