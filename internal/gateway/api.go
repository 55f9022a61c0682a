package gateway

import (
	"context"

	"github.com/preston-bernstein/transfer-console/internal/domain/clubs"
	"github.com/preston-bernstein/transfer-console/internal/domain/market"
	"github.com/preston-bernstein/transfer-console/internal/domain/nationalities"
	"github.com/preston-bernstein/transfer-console/internal/domain/players"
)

// PlayerAPI covers the player endpoints.
type PlayerAPI interface {
	ListPlayers(ctx context.Context) ([]players.Player, error)
	GetPlayer(ctx context.Context, id int) (players.Player, error)
	SearchOutfield(ctx context.Context, q SearchQuery) ([]players.Player, error)
	SearchGoalkeepers(ctx context.Context, q SearchQuery) ([]players.Player, error)
}

// ClubAPI covers the club and nationality endpoints.
type ClubAPI interface {
	ListClubs(ctx context.Context) ([]clubs.Club, error)
	GetClub(ctx context.Context, id int) (players.Squad, error)
	ListNationalities(ctx context.Context) ([]nationalities.Nationality, error)
}

// MarketAPI covers the transfer market.
type MarketAPI interface {
	TransferMarket(ctx context.Context) ([]market.Listing, error)
	TransferPlayer(ctx context.Context, req TransferRequest) (TransferResult, error)
}

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (LoginResult, error)
}

// API is the full remote surface.
type API interface {
	PlayerAPI
	ClubAPI
	MarketAPI
	Authenticator
}
