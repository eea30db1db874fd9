package client

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/coingaming/gremlex/config"
	"github.com/coingaming/gremlex/errors"
)

// Pool fronts a fixed set of persistent connection workers. A query checks
// out an idle worker, runs on it, and returns it; when all workers are busy
// the pool may create up to MaxOverflow transient workers that are torn down
// after their query.
type Pool struct {
	cfg     config.Config
	logger  *slog.Logger
	metrics *Metrics

	workers []*Worker
	free    chan *Worker
	// overflow holds one token per transient worker in use; its capacity is
	// MaxOverflow
	overflow chan struct{}
	nextID   atomic.Int64

	lifecycleMu sync.Mutex
	started     bool
	stopped     bool
}

// NewPool creates a pool for the given configuration
func NewPool(cfg config.Config, logger *slog.Logger, metrics *Metrics) *Pool {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
		free:     make(chan *Worker, cfg.PoolSize),
		overflow: make(chan struct{}, cfg.MaxOverflow),
	}
}

// Start launches the persistent workers
func (p *Pool) Start(ctx context.Context) error {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	if p.started {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Pool", "Start", "pool already started")
	}

	p.workers = make([]*Worker, p.cfg.PoolSize)
	for i := 0; i < p.cfg.PoolSize; i++ {
		worker := NewWorker(i, p.cfg, p.logger, p.metrics)
		worker.Start(ctx)
		p.workers[i] = worker
		p.free <- worker
	}
	p.nextID.Store(int64(p.cfg.PoolSize))

	p.started = true
	return nil
}

// WaitReady blocks until every persistent worker has connected at least
// once, or ctx is done.
func (p *Pool) WaitReady(ctx context.Context) error {
	p.lifecycleMu.Lock()
	workers := p.workers
	p.lifecycleMu.Unlock()

	for _, worker := range workers {
		if err := worker.WaitReady(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Query checks out a worker and runs the query on it. Checkout blocks until
// a worker is idle, an overflow slot frees up, or ctx is done.
func (p *Pool) Query(ctx context.Context, q any, timeout time.Duration) ([]any, error) {
	p.lifecycleMu.Lock()
	started, stopped := p.started, p.stopped
	p.lifecycleMu.Unlock()
	if !started || stopped {
		return nil, errors.WrapInvalid(errors.ErrClientClosed, "Pool", "Query", "check out worker")
	}

	// Fast path: an idle persistent worker
	select {
	case worker := <-p.free:
		defer func() { p.free <- worker }()
		return p.runOn(worker, q, timeout)
	default:
	}

	// All persistent workers busy; try an overflow slot
	select {
	case p.overflow <- struct{}{}:
		return p.queryOverflow(ctx, q, timeout)
	default:
	}

	// Wait for whichever frees up first
	select {
	case worker := <-p.free:
		defer func() { p.free <- worker }()
		return p.runOn(worker, q, timeout)
	case p.overflow <- struct{}{}:
		return p.queryOverflow(ctx, q, timeout)
	case <-ctx.Done():
		return nil, errors.WrapTransient(ctx.Err(), "Pool", "Query", "check out worker")
	}
}

func (p *Pool) runOn(worker *Worker, q any, timeout time.Duration) ([]any, error) {
	if p.metrics != nil {
		p.metrics.workersBusy.Inc()
		defer p.metrics.workersBusy.Dec()
	}
	return worker.Query(q, timeout)
}

// queryOverflow serves one query on a transient worker and tears it down.
// The caller has already taken an overflow token.
func (p *Pool) queryOverflow(ctx context.Context, q any, timeout time.Duration) ([]any, error) {
	defer func() { <-p.overflow }()

	id := int(p.nextID.Add(1))
	worker := NewWorker(id, p.cfg, p.logger, p.metrics)
	worker.Start(ctx)
	defer func() {
		if err := worker.Stop(5 * time.Second); err != nil {
			p.logger.Warn("overflow worker did not stop cleanly", "worker", id, "error", err)
		}
	}()

	if p.metrics != nil {
		p.metrics.overflowWorkers.Inc()
	}

	readyCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := worker.WaitReady(readyCtx); err != nil {
		return nil, err
	}
	return p.runOn(worker, q, timeout)
}

// Stop shuts down all persistent workers, waiting up to timeout for each
func (p *Pool) Stop(timeout time.Duration) error {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	if !p.started || p.stopped {
		return nil
	}
	p.stopped = true

	var g errgroup.Group
	for _, worker := range p.workers {
		worker := worker
		g.Go(func() error {
			return worker.Stop(timeout)
		})
	}
	return g.Wait()
}

// Stats reports the state of every persistent worker
func (p *Pool) Stats() PoolStats {
	p.lifecycleMu.Lock()
	workers := p.workers
	p.lifecycleMu.Unlock()

	stats := PoolStats{
		Size:        p.cfg.PoolSize,
		MaxOverflow: p.cfg.MaxOverflow,
	}
	for _, worker := range workers {
		stats.Workers = append(stats.Workers, WorkerStats{
			ID:         worker.id,
			State:      worker.State().String(),
			Reconnects: worker.Reconnects(),
		})
	}
	return stats
}

// WorkerStats is a point-in-time snapshot of one worker
type WorkerStats struct {
	ID         int    `json:"id"`
	State      string `json:"state"`
	Reconnects int64  `json:"reconnects"`
}

// PoolStats is a point-in-time snapshot of the pool
type PoolStats struct {
	Size        int           `json:"size"`
	MaxOverflow int           `json:"max_overflow"`
	Workers     []WorkerStats `json:"workers"`
}
