package views

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/transfer-console/internal/logging"
	"github.com/preston-bernstein/transfer-console/internal/metrics"
)

// FetchFunc loads the results for one set of filters.
type FetchFunc[F any, T any] func(ctx context.Context, filters F) ([]T, error)

// Controller owns one view's filters and result set. Each fetch is tagged
// with a sequence number and only the latest issued fetch may update state;
// responses that arrive for superseded requests are dropped.
type Controller[F any, T any] struct {
	name    string
	fetch   FetchFunc[F, T]
	gate    func() error
	logger  *slog.Logger
	metrics *metrics.Recorder

	mu       sync.RWMutex
	filters  F
	results  []T
	err      error
	seq      uint64
	applied  uint64
	inflight int
	wg       sync.WaitGroup
}

// ControllerOption customizes a Controller.
type ControllerOption func(*controllerOptions)

type controllerOptions struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// WithLogger sets the logger used for fetch outcomes.
func WithLogger(logger *slog.Logger) ControllerOption {
	return func(o *controllerOptions) { o.logger = logger }
}

// WithMetrics records each fetch as a refresh cycle.
func WithMetrics(rec *metrics.Recorder) ControllerOption {
	return func(o *controllerOptions) { o.metrics = rec }
}

// NewController builds a controller. gate runs before every fetch and may be nil.
func NewController[F any, T any](name string, initial F, fetch FetchFunc[F, T], gate func() error, opts ...ControllerOption) *Controller[F, T] {
	o := controllerOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	return &Controller[F, T]{
		name:    name,
		fetch:   fetch,
		gate:    gate,
		logger:  o.logger,
		metrics: o.metrics,
		filters: initial,
	}
}

// SetFilters stores the criteria and starts a fetch in the background. It
// returns immediately; an earlier fetch still in flight is left to finish and
// its response is discarded.
func (c *Controller[F, T]) SetFilters(ctx context.Context, filters F) {
	filters, seq := c.begin(&filters)
	go func() {
		_ = c.run(ctx, filters, seq)
	}()
}

// Refresh refetches with the current filters and waits for the result.
func (c *Controller[F, T]) Refresh(ctx context.Context) error {
	filters, seq := c.begin(nil)
	return c.run(ctx, filters, seq)
}

// Apply sets the filters and fetches synchronously.
func (c *Controller[F, T]) Apply(ctx context.Context, filters F) error {
	filters, seq := c.begin(&filters)
	return c.run(ctx, filters, seq)
}

func (c *Controller[F, T]) begin(filters *F) (F, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if filters != nil {
		c.filters = *filters
	}
	c.seq++
	c.inflight++
	c.wg.Add(1)
	return c.filters, c.seq
}

// run performs one fetch. The returned error belongs to this fetch even when
// a newer request has superseded it.
func (c *Controller[F, T]) run(ctx context.Context, filters F, seq uint64) error {
	defer c.wg.Done()

	start := time.Now()
	var (
		results []T
		err     error
	)
	if c.gate != nil {
		err = c.gate()
	}
	if err == nil {
		results, err = c.fetch(ctx, filters)
	}
	elapsed := time.Since(start)
	c.metrics.RecordRefreshCycle(c.name, elapsed, err)

	logger := logging.FromContext(ctx, c.logger)
	c.mu.Lock()
	c.inflight--
	latest := seq == c.seq
	if latest {
		c.applied = seq
		c.err = err
		if err != nil {
			c.results = nil
		} else {
			c.results = results
		}
	}
	c.mu.Unlock()

	switch {
	case !latest:
		logging.Debug(logger, "discarding stale response", "view", c.name, logging.FieldSequence, seq)
	case err != nil:
		logging.Warn(logger, "view refresh failed", "view", c.name, logging.FieldSequence, seq, "error", err)
	default:
		logging.Debug(logger, "view refreshed", "view", c.name, logging.FieldSequence, seq,
			logging.FieldCount, len(results), logging.FieldDurationMS, elapsed.Milliseconds())
	}
	return err
}

// Results returns a copy of the latest applied result set.
func (c *Controller[F, T]) Results() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.results))
	copy(out, c.results)
	return out
}

// Err returns the error from the latest applied fetch.
func (c *Controller[F, T]) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Filters returns the current criteria.
func (c *Controller[F, T]) Filters() F {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filters
}

// Loading reports whether any fetch is in flight.
func (c *Controller[F, T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inflight > 0
}

// Sequence returns the number of the latest issued request and the number
// of the request whose response is currently shown.
func (c *Controller[F, T]) Sequence() (issued, applied uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.seq, c.applied
}

// Wait blocks until every fetch started so far has finished.
func (c *Controller[F, T]) Wait() {
	c.wg.Wait()
}
