package views

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/transfer-console/internal/metrics"
)

// gatedFetch blocks each call until its filter's release channel is closed.
type gatedFetch struct {
	started  chan string
	releases map[string]chan struct{}
	errs     map[string]error
}

func newGatedFetch(keys ...string) *gatedFetch {
	g := &gatedFetch{
		started:  make(chan string, len(keys)),
		releases: map[string]chan struct{}{},
		errs:     map[string]error{},
	}
	for _, k := range keys {
		g.releases[k] = make(chan struct{})
	}
	return g
}

func (g *gatedFetch) fetch(ctx context.Context, filter string) ([]string, error) {
	g.started <- filter
	<-g.releases[filter]
	if err := g.errs[filter]; err != nil {
		return nil, err
	}
	return []string{filter}, nil
}

func TestLatestIssuedRequestWinsWhenItArrivesFirst(t *testing.T) {
	g := newGatedFetch("first", "second")
	c := NewController[string, string]("test", "", g.fetch, nil)
	ctx := context.Background()

	c.SetFilters(ctx, "first")
	<-g.started
	c.SetFilters(ctx, "second")
	<-g.started

	close(g.releases["second"])
	close(g.releases["first"])
	c.Wait()

	got := c.Results()
	if len(got) != 1 || got[0] != "second" {
		t.Fatalf("expected results from the latest request, got %v", got)
	}
	if issued, applied := c.Sequence(); issued != 2 || applied != 2 {
		t.Fatalf("expected seq 2/2, got %d/%d", issued, applied)
	}
	if c.Filters() != "second" {
		t.Fatalf("expected filters to be the latest, got %q", c.Filters())
	}
}

func TestLatestIssuedRequestWinsWhenItArrivesLast(t *testing.T) {
	g := newGatedFetch("first", "second")
	c := NewController[string, string]("test", "", g.fetch, nil)
	ctx := context.Background()

	c.SetFilters(ctx, "first")
	<-g.started
	c.SetFilters(ctx, "second")
	<-g.started

	close(g.releases["first"])
	close(g.releases["second"])
	c.Wait()

	if got := c.Results(); len(got) != 1 || got[0] != "second" {
		t.Fatalf("expected results from the latest request, got %v", got)
	}
}

func TestStaleErrorIsDiscarded(t *testing.T) {
	g := newGatedFetch("first", "second")
	g.errs["first"] = errors.New("boom")
	c := NewController[string, string]("test", "", g.fetch, nil)
	ctx := context.Background()

	c.SetFilters(ctx, "first")
	<-g.started
	c.SetFilters(ctx, "second")
	<-g.started
	close(g.releases["second"])
	close(g.releases["first"])
	c.Wait()

	if c.Err() != nil {
		t.Fatalf("stale error should not be shown, got %v", c.Err())
	}
}

func TestSetFiltersReturnsBeforeFetchCompletes(t *testing.T) {
	g := newGatedFetch("x")
	c := NewController[string, string]("test", "", g.fetch, nil)

	c.SetFilters(context.Background(), "x")
	<-g.started
	if !c.Loading() {
		t.Fatal("expected loading while fetch is in flight")
	}
	close(g.releases["x"])
	c.Wait()
	if c.Loading() {
		t.Fatal("expected loading to clear")
	}
}

func TestFailedFetchClearsResults(t *testing.T) {
	fail := false
	fetch := func(ctx context.Context, f string) ([]string, error) {
		if fail {
			return nil, errors.New("down")
		}
		return []string{"a", "b"}, nil
	}
	rec := metrics.NewRecorder()
	c := NewController[string, string]("test", "", fetch, nil, WithMetrics(rec))

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Results()) != 2 {
		t.Fatalf("expected 2 results, got %v", c.Results())
	}

	fail = true
	if err := c.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(c.Results()) != 0 || c.Err() == nil {
		t.Fatalf("expected empty error state, got %v / %v", c.Results(), c.Err())
	}
}

func TestGateBlocksFetch(t *testing.T) {
	called := false
	fetch := func(ctx context.Context, f string) ([]string, error) {
		called = true
		return nil, nil
	}
	c := NewController[string, string]("test", "", fetch, func() error { return ErrLoginRequired })

	if err := c.Apply(context.Background(), "x"); !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}
	if called {
		t.Fatal("gate should prevent the fetch")
	}
}

func TestResultsReturnsCopy(t *testing.T) {
	fetch := func(ctx context.Context, f string) ([]string, error) { return []string{"a"}, nil }
	c := NewController[string, string]("test", "", fetch, nil)
	_ = c.Refresh(context.Background())

	got := c.Results()
	got[0] = "mutated"
	if c.Results()[0] != "a" {
		t.Fatal("results must not alias controller state")
	}
}
