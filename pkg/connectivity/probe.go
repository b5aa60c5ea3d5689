package connectivity

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// Probe determines the currently active connection kinds, typically by
// checking reachability of a known endpoint. A probe returns the kinds
// it can vouch for when the endpoint is reachable and [None] when it is
// not; an error is reserved for conditions other than being offline
// (misconfiguration, context cancellation).
type Probe interface {
	Probe(ctx context.Context) ([]Kind, error)
}

// ProbeFunc is a function type that implements the Probe interface.
type ProbeFunc func(ctx context.Context) ([]Kind, error)

// Probe implements the Probe interface for ProbeFunc.
func (f ProbeFunc) Probe(ctx context.Context) ([]Kind, error) {
	return f(ctx)
}

// offline is the report probes return for an unreachable endpoint.
func offline() []Kind { return []Kind{None} }

// reported normalizes a probe's configured kind, defaulting to Other.
// Servers cannot usually distinguish the transport they are on.
func reported(k Kind) []Kind {
	if k == "" {
		k = Other
	}
	return []Kind{k}
}

// HTTPProbe reports connectivity based on a HEAD request to a
// well-known URL.
type HTTPProbe struct {
	// URL is the endpoint to check. Required.
	URL string

	// Client is the HTTP client to use. If nil, a client with a
	// 5-second timeout is used.
	Client *http.Client

	// Kind is the kind reported when the endpoint is reachable.
	// Defaults to Other.
	Kind Kind
}

// Probe implements the Probe interface.
func (p *HTTPProbe) Probe(ctx context.Context) ([]Kind, error) {
	client := p.Client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.URL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return offline(), nil
	}
	resp.Body.Close()

	// Any HTTP response proves the network path; the status is the
	// endpoint's business, not the transport's.
	return reported(p.Kind), nil
}

// TCPProbe reports connectivity based on a TCP dial to host:port.
type TCPProbe struct {
	// Address is the host:port to dial. Required.
	Address string

	// Timeout bounds the dial. Defaults to 5 seconds.
	Timeout time.Duration

	// Kind is the kind reported when the address is reachable.
	// Defaults to Other.
	Kind Kind
}

// Probe implements the Probe interface.
func (p *TCPProbe) Probe(ctx context.Context) ([]Kind, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	dialer := &net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", p.Address)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return offline(), nil
	}
	conn.Close()
	return reported(p.Kind), nil
}

// RedisProbe reports connectivity based on a PING against a Redis
// server, for deployments where "online" means "can reach our Redis".
type RedisProbe struct {
	// Client is the Redis client to ping. Required.
	Client *redis.Client

	// Kind is the kind reported when the server responds. Defaults to
	// Other.
	Kind Kind
}

// Probe implements the Probe interface.
func (p *RedisProbe) Probe(ctx context.Context) ([]Kind, error) {
	if err := p.Client.Ping(ctx).Err(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return offline(), nil
	}
	return reported(p.Kind), nil
}
