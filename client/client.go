package client

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/coingaming/gremlex/config"
	"github.com/coingaming/gremlex/errors"
	"github.com/coingaming/gremlex/metric"
)

// Client is the public entry point: it validates configuration, owns the
// worker pool, and routes queries to idle workers. Queries either return a
// list of decoded values or a typed error; the client never retries a failed
// query on the caller's behalf.
type Client struct {
	cfg     config.Config
	logger  *slog.Logger
	metrics *Metrics
	pool    *Pool
	closed  atomic.Bool
}

// Option configures a Client
type Option func(*Client)

// WithLogger sets the structured logger used by the client and its workers
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetricsRegistry enables Prometheus metrics on the given registry
func WithMetricsRegistry(registry *metric.MetricsRegistry) Option {
	return func(c *Client) {
		c.metrics = newMetrics(registry)
	}
}

// New validates the config and creates a client. Call Start before querying.
func New(cfg config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "gremlex")
	c.pool = NewPool(cfg, c.logger, c.metrics)
	return c, nil
}

// Start connects the worker pool. Workers connect in the background;
// queries issued before a worker is connected fail with
// CONNECTION_UNAVAILABLE.
func (c *Client) Start(ctx context.Context) error {
	return c.pool.Start(ctx)
}

// WaitReady blocks until every persistent worker has connected at least once
func (c *Client) WaitReady(ctx context.Context) error {
	return c.pool.WaitReady(ctx)
}

// Query runs a Gremlin-Groovy string or rooted traversal with the default
// timeout and returns the decoded result values.
func (c *Client) Query(ctx context.Context, q any) ([]any, error) {
	return c.QueryWithTimeout(ctx, q, DefaultQueryTimeout)
}

// QueryWithTimeout runs a query with an explicit timeout. The timeout bounds
// the worker checkout, and the response drain then gets the same timeout
// again, so a call can take up to twice the timeout in total.
func (c *Client) QueryWithTimeout(ctx context.Context, q any, timeout time.Duration) ([]any, error) {
	if c.closed.Load() {
		return nil, errors.WrapInvalid(errors.ErrClientClosed, "Client", "Query", "submit query")
	}
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}

	checkoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.pool.Query(checkoutCtx, q, timeout)
}

// Close shuts down the pool and all workers
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.pool.Stop(10 * time.Second)
}

// Stats reports the pool and worker states
func (c *Client) Stats() PoolStats {
	return c.pool.Stats()
}
