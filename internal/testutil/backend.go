package testutil

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/preston-bernstein/transfer-console/internal/domain/clubs"
	"github.com/preston-bernstein/transfer-console/internal/domain/contracts"
	"github.com/preston-bernstein/transfer-console/internal/domain/market"
	"github.com/preston-bernstein/transfer-console/internal/domain/nationalities"
	"github.com/preston-bernstein/transfer-console/internal/domain/players"
	"github.com/preston-bernstein/transfer-console/internal/domain/users"
	"github.com/preston-bernstein/transfer-console/internal/gateway"
)

// Account is a login the fake backend accepts.
type Account struct {
	Password string
	Role     users.Role
}

// Backend is an in-memory stand-in for the transfer service. Clients bound
// with Client share its state, so a transfer made through one is visible to
// the next.
type Backend struct {
	mu            sync.Mutex
	Nationalities []nationalities.Nationality
	Clubs         []clubs.Club
	Players       []players.Player
	Accounts      map[string]Account
	// Errs forces an error for a gateway operation name.
	Errs map[string]error
	// TokenTTL is the lifetime of issued tokens; zero means one hour.
	TokenTTL time.Duration
	Now      func() time.Time

	calls     map[string]int
	tokens    []string
	transfers []gateway.TransferRequest
}

// NewBackend returns a backend seeded with the sample fixtures and an admin
// and a regular account.
func NewBackend() *Backend {
	return &Backend{
		Nationalities: SampleNationalities(),
		Clubs:         SampleClubs(),
		Players:       SamplePlayers(),
		Accounts: map[string]Account{
			"admin": {Password: "secret", Role: users.RoleAdmin},
			"scout": {Password: "secret", Role: users.RoleUser},
		},
		Errs:  map[string]error{},
		calls: map[string]int{},
	}
}

// Client returns an API bound to tokens. tokens may be nil.
func (b *Backend) Client(tokens gateway.TokenSource) gateway.API {
	return &fakeClient{backend: b, tokens: tokens}
}

// Calls returns how many times op was invoked.
func (b *Backend) Calls(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

// SeenTokens returns the bearer tokens presented, in order. Empty tokens are skipped.
func (b *Backend) SeenTokens() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.tokens...)
}

// Transfers returns the transfer requests accepted so far.
func (b *Backend) Transfers() []gateway.TransferRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]gateway.TransferRequest(nil), b.transfers...)
}

// SetErr forces op to fail with err; nil clears it.
func (b *Backend) SetErr(op string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		delete(b.Errs, op)
		return
	}
	b.Errs[op] = err
}

func (b *Backend) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

type fakeClient struct {
	backend *Backend
	tokens  gateway.TokenSource
}

var _ gateway.API = (*fakeClient)(nil)

// begin records the call and returns with the backend locked.
func (c *fakeClient) begin(op string) error {
	b := c.backend
	b.mu.Lock()
	b.calls[op]++
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			b.tokens = append(b.tokens, tok)
		}
	}
	return b.Errs[op]
}

func (c *fakeClient) authorized(op string, adminOnly bool) error {
	if c.tokens == nil {
		return &gateway.APIError{Op: op, Status: http.StatusUnauthorized, Message: "Not authenticated"}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.tokens.Token(), claims); err != nil {
		return &gateway.APIError{Op: op, Status: http.StatusUnauthorized, Message: "Could not validate credentials"}
	}
	if adminOnly && claims["role"] != string(users.RoleAdmin) {
		return &gateway.APIError{Op: op, Status: http.StatusForbidden, Message: "Admin privileges required"}
	}
	return nil
}

func (c *fakeClient) ListPlayers(ctx context.Context) ([]players.Player, error) {
	err := c.begin(gateway.OpListPlayers)
	defer c.backend.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return append([]players.Player(nil), c.backend.Players...), nil
}

func (c *fakeClient) GetPlayer(ctx context.Context, id int) (players.Player, error) {
	err := c.begin(gateway.OpGetPlayer)
	defer c.backend.mu.Unlock()
	if err != nil {
		return players.Player{}, err
	}
	for _, p := range c.backend.Players {
		if p.ID == id && !p.IsGoalkeeper() {
			return p, nil
		}
	}
	return players.Player{}, &gateway.APIError{Op: gateway.OpGetPlayer, Status: http.StatusNotFound, Message: "Player not found"}
}

func (c *fakeClient) SearchOutfield(ctx context.Context, q gateway.SearchQuery) ([]players.Player, error) {
	err := c.begin(gateway.OpSearchOutfield)
	defer c.backend.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return c.search(q, players.PositionOutfield), nil
}

func (c *fakeClient) SearchGoalkeepers(ctx context.Context, q gateway.SearchQuery) ([]players.Player, error) {
	err := c.begin(gateway.OpSearchGoalkeepers)
	defer c.backend.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return c.search(q, players.PositionGoalkeeper), nil
}

func (c *fakeClient) search(q gateway.SearchQuery, pos players.Position) []players.Player {
	prefix := strings.ToLower(strings.TrimSpace(q.StartsWith))
	out := []players.Player{}
	for _, p := range c.backend.Players {
		if p.Position != pos {
			continue
		}
		if prefix != "" && !strings.HasPrefix(strings.ToLower(p.Name), prefix) {
			continue
		}
		if q.NationalityID > 0 && p.Nationality.ID != q.NationalityID {
			continue
		}
		if q.ClubID > 0 && p.CurrentClubID() != q.ClubID {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (c *fakeClient) ListClubs(ctx context.Context) ([]clubs.Club, error) {
	err := c.begin(gateway.OpListClubs)
	defer c.backend.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return append([]clubs.Club(nil), c.backend.Clubs...), nil
}

func (c *fakeClient) GetClub(ctx context.Context, id int) (players.Squad, error) {
	err := c.begin(gateway.OpGetClub)
	defer c.backend.mu.Unlock()
	if err != nil {
		return players.Squad{}, err
	}
	for _, club := range c.backend.Clubs {
		if club.ID != id {
			continue
		}
		squad := players.Squad{Club: club, Players: []players.Player{}}
		for _, p := range c.backend.Players {
			if p.CurrentClubID() == id {
				squad.Players = append(squad.Players, p)
			}
		}
		return squad, nil
	}
	return players.Squad{}, &gateway.APIError{Op: gateway.OpGetClub, Status: http.StatusNotFound, Message: "Club not found"}
}

func (c *fakeClient) ListNationalities(ctx context.Context) ([]nationalities.Nationality, error) {
	err := c.begin(gateway.OpListNationalities)
	defer c.backend.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return append([]nationalities.Nationality(nil), c.backend.Nationalities...), nil
}

func (c *fakeClient) TransferMarket(ctx context.Context) ([]market.Listing, error) {
	err := c.begin(gateway.OpTransferMarket)
	defer c.backend.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if err := c.authorized(gateway.OpTransferMarket, true); err != nil {
		return nil, err
	}
	out := []market.Listing{}
	for _, p := range c.backend.Players {
		if p.Contract == nil {
			continue
		}
		out = append(out, market.Listing{Player: p, Contract: *p.Contract})
	}
	return out, nil
}

func (c *fakeClient) TransferPlayer(ctx context.Context, req gateway.TransferRequest) (gateway.TransferResult, error) {
	err := c.begin(gateway.OpTransferPlayer)
	defer c.backend.mu.Unlock()
	if err != nil {
		return gateway.TransferResult{}, err
	}
	if err := c.authorized(gateway.OpTransferPlayer, true); err != nil {
		return gateway.TransferResult{}, err
	}
	for i, p := range c.backend.Players {
		if p.ID != req.PlayerID || p.IsGoalkeeper() {
			continue
		}
		club := clubs.Ref{ID: req.NewClubID}
		for _, cl := range c.backend.Clubs {
			if cl.ID == req.NewClubID {
				club = cl.Ref()
			}
		}
		contract := &contracts.Contract{
			Club:          club,
			Start:         req.ContractStart,
			End:           req.ContractEnd,
			ReleaseClause: req.ReleaseClause,
		}
		p.Club = club
		p.Contract = contract
		c.backend.Players[i] = p
		c.backend.transfers = append(c.backend.transfers, req)
		return gateway.TransferResult{Message: "Player transferred successfully", Contract: contract}, nil
	}
	return gateway.TransferResult{}, &gateway.APIError{Op: gateway.OpTransferPlayer, Status: http.StatusNotFound, Message: "Player not found"}
}

func (c *fakeClient) Login(ctx context.Context, username, password string) (gateway.LoginResult, error) {
	err := c.begin(gateway.OpLogin)
	defer c.backend.mu.Unlock()
	if err != nil {
		return gateway.LoginResult{}, err
	}
	acct, ok := c.backend.Accounts[username]
	if !ok || acct.Password != password {
		return gateway.LoginResult{}, &gateway.APIError{Op: gateway.OpLogin, Status: http.StatusUnauthorized, Message: "Invalid username or password"}
	}
	ttl := c.backend.TokenTTL
	if ttl == 0 {
		ttl = time.Hour
	}
	token := SignToken(username, acct.Role, c.backend.now().Add(ttl))
	return gateway.LoginResult{
		Token: token,
		User:  &users.User{Name: username, Username: username, Role: acct.Role},
	}, nil
}

// SignToken issues an HS256 token with the claims the transfer service sets.
func SignToken(username string, role users.Role, expires time.Time) string {
	claims := jwt.MapClaims{"username": username, "exp": expires.Unix()}
	if role != "" {
		claims["role"] = string(role)
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		panic(err)
	}
	return signed
}
