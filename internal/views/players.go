package views

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/transfer-console/internal/domain/players"
	"github.com/preston-bernstein/transfer-console/internal/gateway"
)

// Tab selects which player table a search covers.
type Tab string

const (
	TabAll         Tab = "all"
	TabOutfield    Tab = "outfield"
	TabGoalkeepers Tab = "goalkeepers"
)

// ParseTab maps user input to a Tab. Empty input means TabAll.
func ParseTab(raw string) (Tab, error) {
	switch Tab(strings.ToLower(strings.TrimSpace(raw))) {
	case "", TabAll:
		return TabAll, nil
	case TabOutfield, "players":
		return TabOutfield, nil
	case TabGoalkeepers, "goalkeeper", "gk":
		return TabGoalkeepers, nil
	default:
		return "", fmt.Errorf("unknown tab %q (expected all, outfield or goalkeepers)", raw)
	}
}

// PlayerFilters are the players view criteria. Zero values mean "any".
type PlayerFilters struct {
	Search        string
	NationalityID int
	ClubID        int
	MinOverall    int
	MaxOverall    int
	Tab           Tab
	// Page is 1-based and only applies when PageSize > 0.
	Page     int
	PageSize int
}

func (f PlayerFilters) query() gateway.SearchQuery {
	return gateway.SearchQuery{
		StartsWith:    f.Search,
		NationalityID: f.NationalityID,
		ClubID:        f.ClubID,
	}
}

// PlayersController backs the players listing.
type PlayersController struct {
	*Controller[PlayerFilters, players.Player]
	api gateway.PlayerAPI
}

// NewPlayersController builds the players view. A logged-in user is required.
func NewPlayersController(api gateway.PlayerAPI, session Session, opts ...ControllerOption) *PlayersController {
	pc := &PlayersController{api: api}
	gate := func() error { return RequireLogin(session) }
	pc.Controller = NewController[PlayerFilters, players.Player]("players", PlayerFilters{Tab: TabAll}, pc.load, gate, opts...)
	return pc
}

func (pc *PlayersController) load(ctx context.Context, f PlayerFilters) ([]players.Player, error) {
	found, err := SearchPlayers(ctx, pc.api, f.Tab, f.query())
	if err != nil {
		return nil, err
	}
	return paginate(filterOverall(found, f.MinOverall, f.MaxOverall), f.Page, f.PageSize), nil
}

// SearchPlayers runs the search for a tab. TabAll issues the outfield and
// goalkeeper searches concurrently and returns outfield results followed by
// goalkeepers; if either search fails the whole search fails.
func SearchPlayers(ctx context.Context, api gateway.PlayerAPI, tab Tab, q gateway.SearchQuery) ([]players.Player, error) {
	switch tab {
	case TabOutfield:
		return api.SearchOutfield(ctx, q)
	case TabGoalkeepers:
		return api.SearchGoalkeepers(ctx, q)
	}

	var outfield, goalkeepers []players.Player
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		outfield, err = api.SearchOutfield(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		goalkeepers, err = api.SearchGoalkeepers(gctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	combined := make([]players.Player, 0, len(outfield)+len(goalkeepers))
	combined = append(combined, outfield...)
	combined = append(combined, goalkeepers...)
	return combined, nil
}

func filterOverall(in []players.Player, min, max int) []players.Player {
	if min <= 0 && max <= 0 {
		return in
	}
	out := make([]players.Player, 0, len(in))
	for _, p := range in {
		if min > 0 && p.Overall < min {
			continue
		}
		if max > 0 && p.Overall > max {
			continue
		}
		out = append(out, p)
	}
	return out
}

func paginate[T any](in []T, page, size int) []T {
	if size <= 0 {
		return in
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(in) {
		return []T{}
	}
	end := start + size
	if end > len(in) {
		end = len(in)
	}
	return in[start:end]
}
