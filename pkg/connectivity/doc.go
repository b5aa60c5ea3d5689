/*
Package connectivity abstracts the network-state source the retry queue
gates on.

The Monitor interface is the capability the queue consumes: a one-shot
probe plus a subscribable stream of connection-kind reports, delivering
the current state first and then every transition. Two implementations
are provided:

  - ManualMonitor: state driven by the caller; the natural choice in
    tests and for applications that learn about connectivity through
    their own signals.
  - PollingMonitor: synthesizes a change stream by polling a Probe on a
    fixed interval or a cron schedule, publishing only transitions.

Probes check reachability of a concrete endpoint: HTTPProbe (HEAD
request), TCPProbe (dial), RedisProbe (PING via go-redis), or any
ProbeFunc.

Classification of a report as "usable" is a Policy. FirstKind, the
default, trusts the source's priority ordering and inspects only the
head of the report; AnyKind scans the whole report. The distinction
matters for sources that report [none, wifi] during a handover.

Example:

	probe := &connectivity.TCPProbe{Address: "gateway.internal:443", Kind: connectivity.Ethernet}
	mon, err := connectivity.NewPollingMonitor(connectivity.PollingConfig{
		Probe:    probe,
		Interval: 15 * time.Second,
	})
	if err != nil {
		log.Fatal(err)
	}
	mon.Start()
	defer mon.Stop()

	events, cancel := mon.Subscribe()
	defer cancel()
	for kinds := range events {
		fmt.Println("connectivity:", kinds)
	}
*/
package connectivity
