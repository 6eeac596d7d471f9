package rpc

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vietddude/walletcore/internal/infra/metrics"
)

// Client issues JSON-RPC calls against an ordered list of endpoints,
// rotating to the next one when the active endpoint is rate limited or
// persistently failing.
type Client struct {
	chain     string
	providers []Provider
	retry     RetryConfig
	log       *slog.Logger

	mu     sync.Mutex
	active int
}

// NewClient creates a client over the given endpoints. At least one endpoint
// is required.
func NewClient(chain string, providers []Provider, log *slog.Logger) (*Client, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("no rpc endpoints configured")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		chain:     chain,
		providers: providers,
		retry:     DefaultRetryConfig,
		log:       log,
	}, nil
}

// Call makes an RPC call with retry on the active endpoint and failover
// across the remaining ones.
func (c *Client) Call(ctx context.Context, method string, params []any) (any, error) {
	var lastErr error

	for i := 0; i < len(c.providers); i++ {
		p := c.activeProvider()
		start := time.Now()

		result, err := CallWithRetry(ctx, p, method, params, c.retry)

		metrics.RPCCallsTotal.WithLabelValues(c.chain, p.Name(), method).Inc()
		metrics.RPCLatency.WithLabelValues(c.chain, p.Name(), method).
			Observe(time.Since(start).Seconds())

		if err == nil {
			return result, nil
		}
		lastErr = err

		action := ClassifyError(err)
		metrics.RPCErrorsTotal.WithLabelValues(c.chain, p.Name(), errorType(action)).Inc()

		if action == ActionFatal {
			return nil, err
		}

		// Rotate and let the next endpoint try.
		c.log.Warn("RPC endpoint failed, rotating",
			"chain", c.chain, "provider", p.Name(), "method", method, "error", err)
		c.rotate()
	}

	return nil, fmt.Errorf("all rpc endpoints failed: %w", lastErr)
}

// Healthy reports whether any endpoint is currently usable.
func (c *Client) Healthy() bool {
	for _, p := range c.providers {
		if p.Healthy() {
			return true
		}
	}
	return false
}

// ActiveEndpoint returns the name of the endpoint calls currently go to.
func (c *Client) ActiveEndpoint() string {
	return c.activeProvider().Name()
}

func (c *Client) activeProvider() Provider {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.providers[c.active]
}

func (c *Client) rotate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = (c.active + 1) % len(c.providers)
}

func errorType(action ErrorAction) string {
	switch action {
	case ActionFailover:
		return "failover"
	case ActionFatal:
		return "fatal"
	default:
		return "retryable"
	}
}
