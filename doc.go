/*
Package goretry provides a connectivity-gated retry queue for Go
applications: named units of work are held until network connectivity is
available, then retried with a shared exponential backoff until each one
succeeds.

Connectivity (pkg/connectivity):
  - Monitor: probe + change-stream capability interface
  - ManualMonitor: controllable in-memory source for tests
  - PollingMonitor: interval or cron-scheduled probing
  - probes: HTTP, TCP, Redis PING

Retry queue (pkg/retryqueue):
  - Queue: register work by id, retried on every firing until it succeeds
  - single shared timer, interval doubling between firings, capped
  - optional per-item completion callbacks
  - Prometheus instrumentation via NewWithMetrics

Example usage:

	import (
		"github.com/vnykmshr/goretry/pkg/connectivity"
		"github.com/vnykmshr/goretry/pkg/retryqueue"
	)

	mon := connectivity.NewManualMonitor(connectivity.None)
	q, _ := retryqueue.New(mon)
	defer q.Dispose()

	q.Register("sync-profile", func(ctx context.Context) error {
		return syncProfile(ctx)
	}, retryqueue.WithCompletion(func(id string) {
		log.Printf("%s done", id)
	}))

	mon.Set(connectivity.Wifi) // work starts once a usable connection appears
*/
package goretry
