package views

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/transfer-console/internal/domain/players"
	"github.com/preston-bernstein/transfer-console/internal/gateway"
)

func TestAllTabCombinesOutfieldThenGoalkeepers(t *testing.T) {
	cases := []struct{ n, m int }{{0, 0}, {3, 0}, {0, 2}, {4, 3}}
	for _, tc := range cases {
		api := &fakeAPI{outfield: outfielders(tc.n), goalkeepers: keepers(tc.m)}
		pc := NewPlayersController(api, loggedIn())

		if err := pc.Apply(context.Background(), PlayerFilters{Tab: TabAll}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := pc.Results()
		if len(got) != tc.n+tc.m {
			t.Fatalf("expected %d players, got %d", tc.n+tc.m, len(got))
		}
		seen := map[string]bool{}
		for i, p := range got {
			if seen[p.Key()] {
				t.Fatalf("duplicate player %s", p.Key())
			}
			seen[p.Key()] = true
			wantGK := i >= tc.n
			if p.IsGoalkeeper() != wantGK {
				t.Fatalf("position %d out of order: %+v", i, p)
			}
		}
	}
}

func TestSingleTabIssuesOneCall(t *testing.T) {
	cases := []struct {
		tab    Tab
		called string
		idle   string
	}{
		{TabOutfield, gateway.OpSearchOutfield, gateway.OpSearchGoalkeepers},
		{TabGoalkeepers, gateway.OpSearchGoalkeepers, gateway.OpSearchOutfield},
	}
	for _, tc := range cases {
		api := &fakeAPI{outfield: outfielders(2), goalkeepers: keepers(1)}
		pc := NewPlayersController(api, loggedIn())
		if err := pc.Apply(context.Background(), PlayerFilters{Tab: tc.tab}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if api.count(tc.called) != 1 || api.count(tc.idle) != 0 {
			t.Fatalf("tab %s: unexpected calls %v", tc.tab, api.calls)
		}
	}
}

func TestAllTabFailsWhenEitherSearchFails(t *testing.T) {
	api := &fakeAPI{outfield: outfielders(2), goalkeeperErr: errors.New("down")}
	pc := NewPlayersController(api, loggedIn())
	if err := pc.Apply(context.Background(), PlayerFilters{}); err == nil {
		t.Fatal("expected combined search to fail")
	}
	if len(pc.Results()) != 0 {
		t.Fatalf("expected no partial results, got %d", len(pc.Results()))
	}
}

func TestPlayerFiltersReachSearchQuery(t *testing.T) {
	api := &fakeAPI{}
	pc := NewPlayersController(api, loggedIn())
	_ = pc.Apply(context.Background(), PlayerFilters{Search: "Mo", NationalityID: 3, ClubID: 9, Tab: TabOutfield})

	if len(api.queries) != 1 {
		t.Fatalf("expected one query, got %d", len(api.queries))
	}
	want := gateway.SearchQuery{StartsWith: "Mo", NationalityID: 3, ClubID: 9}
	if api.queries[0] != want {
		t.Fatalf("expected %+v, got %+v", want, api.queries[0])
	}
}

func TestOverallBoundsAndPaging(t *testing.T) {
	api := &fakeAPI{outfield: outfielders(10)} // overall 60..69
	pc := NewPlayersController(api, loggedIn())

	if err := pc.Apply(context.Background(), PlayerFilters{Tab: TabOutfield, MinOverall: 62, MaxOverall: 67}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(pc.Results()); got != 6 {
		t.Fatalf("expected 6 players within bounds, got %d", got)
	}

	_ = pc.Apply(context.Background(), PlayerFilters{Tab: TabOutfield, Page: 3, PageSize: 4})
	page := pc.Results()
	if len(page) != 2 || page[0].Overall != 68 {
		t.Fatalf("unexpected last page %+v", page)
	}

	_ = pc.Apply(context.Background(), PlayerFilters{Tab: TabOutfield, Page: 9, PageSize: 4})
	if len(pc.Results()) != 0 {
		t.Fatal("expected empty page past the end")
	}
}

func TestPlayersRequireLogin(t *testing.T) {
	api := &fakeAPI{outfield: outfielders(1)}
	pc := NewPlayersController(api, fakeSession{})
	if err := pc.Apply(context.Background(), PlayerFilters{}); !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}
	if api.count(gateway.OpSearchOutfield) != 0 {
		t.Fatal("no search should run without a session")
	}
}

func TestParseTab(t *testing.T) {
	cases := map[string]Tab{"": TabAll, "ALL": TabAll, "outfield": TabOutfield, "gk": TabGoalkeepers, " goalkeepers ": TabGoalkeepers}
	for in, want := range cases {
		got, err := ParseTab(in)
		if err != nil || got != want {
			t.Fatalf("ParseTab(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseTab("defenders"); err == nil {
		t.Fatal("expected unknown tab error")
	}
}

func TestPaginateDefaultsToFirstPage(t *testing.T) {
	in := []players.Player{{ID: 1}, {ID: 2}, {ID: 3}}
	if got := paginate(in, 0, 2); len(got) != 2 || got[0].ID != 1 {
		t.Fatalf("unexpected page %+v", got)
	}
	if got := paginate(in, 5, 0); len(got) != 3 {
		t.Fatal("zero page size disables paging")
	}
}
