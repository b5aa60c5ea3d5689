/*
Package retryqueue defers named units of work until network connectivity
is available and retries them with a shared exponential backoff.

Work is registered under a caller-chosen id. The queue subscribes to a
connectivity.Monitor; when a usable connection is reported and no retry
cycle is in progress, a single shared timer starts at the minimum
interval. Each firing attempts every queued item once, sequentially, in
registration order: items that succeed are removed (invoking their
completion callback, if any, exactly once), items that fail stay queued.
While work remains, the timer is re-armed with its interval doubled,
capped at the maximum; when the queue drains, the timer stops and the
next usable connectivity event starts over from the minimum.

Basic usage:

	mon := connectivity.NewManualMonitor(connectivity.None)
	q, err := retryqueue.New(mon)
	if err != nil {
		log.Fatal(err)
	}
	defer q.Dispose()

	q.Register("upload-report", func(ctx context.Context) error {
		return uploadReport(ctx)
	}, retryqueue.WithCompletion(func(id string) {
		log.Printf("%s uploaded", id)
	}))

	mon.Set(connectivity.Wifi)

Retry policy:

There is no retry ceiling and no per-item backoff. A failing operation
is re-attempted on every firing until it succeeds, is canceled, or the
queue is disposed; the backoff interval is global across the whole
queue. Integrators who need bounded attempts should enforce the bound
inside the operation and return nil once they give up.

Classification:

Whether a connectivity report counts as usable is decided by the
configured connectivity.Policy. The default, FirstKind, inspects only
the first element of the report; see that policy's documentation for
the trade-off and AnyKind for the alternative.

Concurrency:

All operations of one queue run on the firing goroutine, strictly
sequentially; firings never overlap. Registration, connectivity events,
timer firings and disposal serialize on an internal mutex. Operations
themselves run outside the mutex, so they may freely take their time.
Config hooks (OnAttempt, OnSchedule) are invoked synchronously and must
not call back into the queue.

Metrics:

NewWithMetrics and NewWithConfigAndMetrics wrap the queue with
Prometheus instrumentation: registrations, attempts, failures,
completions, timer armings, queued-item and backoff-interval gauges.
*/
package retryqueue
