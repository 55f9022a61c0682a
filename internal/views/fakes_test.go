package views

import (
	"context"
	"sync"

	"github.com/preston-bernstein/transfer-console/internal/domain/clubs"
	"github.com/preston-bernstein/transfer-console/internal/domain/market"
	"github.com/preston-bernstein/transfer-console/internal/domain/nationalities"
	"github.com/preston-bernstein/transfer-console/internal/domain/players"
	"github.com/preston-bernstein/transfer-console/internal/domain/users"
	"github.com/preston-bernstein/transfer-console/internal/gateway"
)

type fakeSession struct {
	user  *users.User
	admin bool
}

func (f fakeSession) CurrentUser() (users.User, bool) {
	if f.user == nil {
		return users.User{}, false
	}
	return *f.user, true
}

func (f fakeSession) IsAdmin() bool { return f.user != nil && f.admin }

func loggedIn() fakeSession {
	return fakeSession{user: &users.User{Username: "ada", Role: users.RoleUser}}
}

func admin() fakeSession {
	return fakeSession{user: &users.User{Username: "admin", Role: users.RoleAdmin}, admin: true}
}

type fakeAPI struct {
	mu sync.Mutex

	outfield      []players.Player
	goalkeepers   []players.Player
	outfieldErr   error
	goalkeeperErr error
	clubs         []clubs.Club
	clubsErr      error
	nationalities []nationalities.Nationality
	listings      []market.Listing

	queries []gateway.SearchQuery
	calls   map[string]int
}

func (f *fakeAPI) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[op]++
}

func (f *fakeAPI) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeAPI) ListPlayers(ctx context.Context) ([]players.Player, error) {
	f.record(gateway.OpListPlayers)
	return append(append([]players.Player{}, f.outfield...), f.goalkeepers...), nil
}

func (f *fakeAPI) GetPlayer(ctx context.Context, id int) (players.Player, error) {
	f.record(gateway.OpGetPlayer)
	for _, p := range f.outfield {
		if p.ID == id {
			return p, nil
		}
	}
	return players.Player{}, &gateway.APIError{Op: gateway.OpGetPlayer, Status: 404}
}

func (f *fakeAPI) SearchOutfield(ctx context.Context, q gateway.SearchQuery) ([]players.Player, error) {
	f.record(gateway.OpSearchOutfield)
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	return f.outfield, f.outfieldErr
}

func (f *fakeAPI) SearchGoalkeepers(ctx context.Context, q gateway.SearchQuery) ([]players.Player, error) {
	f.record(gateway.OpSearchGoalkeepers)
	return f.goalkeepers, f.goalkeeperErr
}

func (f *fakeAPI) ListClubs(ctx context.Context) ([]clubs.Club, error) {
	f.record(gateway.OpListClubs)
	return f.clubs, f.clubsErr
}

func (f *fakeAPI) GetClub(ctx context.Context, id int) (players.Squad, error) {
	f.record(gateway.OpGetClub)
	return players.Squad{}, nil
}

func (f *fakeAPI) ListNationalities(ctx context.Context) ([]nationalities.Nationality, error) {
	f.record(gateway.OpListNationalities)
	return f.nationalities, nil
}

func (f *fakeAPI) TransferMarket(ctx context.Context) ([]market.Listing, error) {
	f.record(gateway.OpTransferMarket)
	return f.listings, nil
}

func (f *fakeAPI) TransferPlayer(ctx context.Context, req gateway.TransferRequest) (gateway.TransferResult, error) {
	f.record(gateway.OpTransferPlayer)
	return gateway.TransferResult{}, nil
}

func outfielders(n int) []players.Player {
	out := make([]players.Player, n)
	for i := range out {
		out[i] = players.Player{ID: i + 1, Name: "O", Position: players.PositionOutfield, Overall: 60 + i}
	}
	return out
}

func keepers(n int) []players.Player {
	out := make([]players.Player, n)
	for i := range out {
		out[i] = players.Player{ID: i + 1, Name: "G", Position: players.PositionGoalkeeper, Overall: 70 + i}
	}
	return out
}
