package watcher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/preston-bernstein/transfer-console/internal/logging"
	"github.com/preston-bernstein/transfer-console/internal/metrics"
)

const (
	defaultInterval = 2 * time.Minute
	readyFailureCap = 3
)

// Refresher is a view that can be refetched.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Watcher refreshes a view on an interval and tracks how the refreshes go.
type Watcher struct {
	name     string
	target   Refresher
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	clock    clockwork.Clock
	onCycle  func(error)

	ticker   clockwork.Ticker
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastAttempt         time.Time `json:"lastAttempt"`
	LastSuccess         time.Time `json:"lastSuccess"`
}

// IsReady reports whether the watcher has had a success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < readyFailureCap
}

// Option customizes a Watcher.
type Option func(*Watcher)

// WithClock overrides the clock driving the ticker.
func WithClock(clock clockwork.Clock) Option {
	return func(w *Watcher) {
		if clock != nil {
			w.clock = clock
		}
	}
}

// WithOnCycle registers a callback invoked after every refresh.
func WithOnCycle(fn func(error)) Option {
	return func(w *Watcher) { w.onCycle = fn }
}

// New constructs a Watcher. A non-positive interval uses the default.
func New(name string, target Refresher, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration, opts ...Option) *Watcher {
	if interval <= 0 {
		interval = defaultInterval
	}
	w := &Watcher{
		name:     name,
		target:   target,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		clock:    clockwork.NewRealClock(),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start refreshes once immediately and then on every tick until the
// context is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	w.startMu.Lock()
	if w.started {
		w.startMu.Unlock()
		return
	}
	w.started = true
	w.ticker = w.clock.NewTicker(w.interval)
	w.startMu.Unlock()

	go func() {
		defer close(w.stopped)
		defer w.ticker.Stop()
		logging.Info(w.logger, "watcher started", "view", w.name, logging.FieldDurationMS, w.interval.Milliseconds())
		w.refreshOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				logging.Info(w.logger, "watcher stopped", "view", w.name)
				return
			case <-w.done:
				logging.Info(w.logger, "watcher stopped", "view", w.name)
				return
			case <-w.ticker.Chan():
				w.refreshOnce(ctx)
			}
		}
	}()
}

// Stop halts the loop and waits for it to exit or for ctx to end.
func (w *Watcher) Stop(ctx context.Context) error {
	w.stopOnce.Do(func() {
		close(w.done)
	})

	w.startMu.Lock()
	started := w.started
	w.startMu.Unlock()
	if !started {
		return nil
	}

	select {
	case <-w.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Watcher) refreshOnce(ctx context.Context) {
	start := w.clock.Now()
	w.recordAttempt(start)
	err := w.target.Refresh(ctx)
	elapsed := w.clock.Since(start)
	w.metrics.RecordRefreshCycle(w.name+"_watch", elapsed, err)

	if err != nil {
		logging.Error(w.logger, "watcher refresh failed", err, "view", w.name, logging.FieldDurationMS, elapsed.Milliseconds())
		w.recordFailure(err, start)
	} else {
		w.recordSuccess(start)
		logging.Debug(w.logger, "watcher refreshed", "view", w.name, logging.FieldDurationMS, elapsed.Milliseconds())
	}
	if w.onCycle != nil {
		w.onCycle(err)
	}
}

func (w *Watcher) recordAttempt(at time.Time) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.LastAttempt = at
}

func (w *Watcher) recordSuccess(at time.Time) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.ConsecutiveFailures = 0
	w.status.LastError = ""
	w.status.LastSuccess = at
}

func (w *Watcher) recordFailure(err error, at time.Time) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.ConsecutiveFailures++
	if err != nil {
		w.status.LastError = err.Error()
	}
	w.status.LastAttempt = at
}

// Status returns a snapshot of the watcher's recent health.
func (w *Watcher) Status() Status {
	w.statusMu.RLock()
	defer w.statusMu.RUnlock()
	return w.status
}
