package watcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/preston-bernstein/transfer-console/internal/metrics"
)

type stubRefresher struct {
	mu    sync.Mutex
	errs  []error
	calls int
	seen  chan struct{}
}

func newStub(errs ...error) *stubRefresher {
	return &stubRefresher{errs: errs, seen: make(chan struct{}, 16)}
}

func (s *stubRefresher) Refresh(ctx context.Context) error {
	s.mu.Lock()
	var err error
	if s.calls < len(s.errs) {
		err = s.errs[s.calls]
	}
	s.calls++
	s.mu.Unlock()
	s.seen <- struct{}{}
	return err
}

func (s *stubRefresher) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func waitCall(t *testing.T, s *stubRefresher) {
	t.Helper()
	select {
	case <-s.seen:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for refresh")
	}
}

func TestWatcherRefreshesOnStartAndEveryTick(t *testing.T) {
	clock := clockwork.NewFakeClock()
	stub := newStub()
	rec := metrics.NewRecorder()
	w := New("market", stub, nil, rec, time.Minute, WithClock(clock))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	waitCall(t, stub)

	clock.Advance(time.Minute)
	waitCall(t, stub)

	if err := w.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if stub.count() != 2 {
		t.Fatalf("expected 2 refreshes, got %d", stub.count())
	}
	if !w.Status().IsReady() {
		t.Fatalf("expected ready status, got %+v", w.Status())
	}
}

func TestWatcherTracksConsecutiveFailures(t *testing.T) {
	clock := clockwork.NewFakeClock()
	boom := errors.New("down")
	stub := newStub(boom, boom, boom, nil)
	var mu sync.Mutex
	var cycles []error
	w := New("market", stub, nil, nil, time.Minute, WithClock(clock), WithOnCycle(func(err error) {
		mu.Lock()
		cycles = append(cycles, err)
		mu.Unlock()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	waitCall(t, stub)
	for i := 0; i < 2; i++ {
		clock.Advance(time.Minute)
		waitCall(t, stub)
	}
	_ = w.Stop(context.Background())

	st := w.Status()
	if st.ConsecutiveFailures != 3 || st.LastError != "down" || st.IsReady() {
		t.Fatalf("unexpected status %+v", st)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(cycles) != 3 {
		t.Fatalf("expected 3 cycle callbacks, got %d", len(cycles))
	}
}

func TestStatusIsReady(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name string
		st   Status
		want bool
	}{
		{"never succeeded", Status{}, false},
		{"healthy", Status{LastSuccess: now}, true},
		{"two failures", Status{LastSuccess: now, ConsecutiveFailures: 2}, true},
		{"three failures", Status{LastSuccess: now, ConsecutiveFailures: 3}, false},
	}
	for _, tc := range cases {
		if got := tc.st.IsReady(); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestWatcherStopsOnContextCancel(t *testing.T) {
	clock := clockwork.NewFakeClock()
	stub := newStub()
	w := New("market", stub, nil, nil, time.Minute, WithClock(clock))

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	waitCall(t, stub)
	cancel()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	if err := w.Stop(stopCtx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	clock.Advance(time.Minute)
	if stub.count() != 1 {
		t.Fatalf("expected no refresh after stop, got %d", stub.count())
	}
}

func TestWatcherStopAndStartAreIdempotent(t *testing.T) {
	stub := newStub()
	w := New("market", stub, nil, nil, 0)
	if err := w.Stop(context.Background()); err != nil {
		t.Fatalf("stop before start: %v", err)
	}
	if err := w.Stop(context.Background()); err != nil {
		t.Fatalf("second stop: %v", err)
	}
	if w.interval != defaultInterval {
		t.Fatalf("expected default interval, got %s", w.interval)
	}
}
