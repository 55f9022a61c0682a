package gateway

import (
	"strconv"
	"strings"

	"github.com/preston-bernstein/transfer-console/internal/domain/contracts"
	"github.com/preston-bernstein/transfer-console/internal/domain/money"
	"github.com/preston-bernstein/transfer-console/internal/domain/users"
	"github.com/preston-bernstein/transfer-console/internal/timeutil"
)

// SearchQuery narrows a player search. Zero ids mean "any".
type SearchQuery struct {
	StartsWith    string
	NationalityID int
	ClubID        int
}

func (q SearchQuery) body(outfield, goalkeepers bool) searchRequest {
	return searchRequest{
		StartsWith:      strings.TrimSpace(q.StartsWith),
		Nationality:     filterValue(q.NationalityID),
		Club:            filterValue(q.ClubID),
		OutfieldPlayers: outfield,
		GoalKeepers:     goalkeepers,
	}
}

func filterValue(id int) string {
	if id <= 0 {
		return unsetFilter
	}
	return strconv.Itoa(id)
}

// TransferRequest moves a player to a new club under fresh contract terms.
type TransferRequest struct {
	PlayerID      int
	NewClubID     int
	ReleaseClause money.Amount
	ContractStart timeutil.Date
	ContractEnd   timeutil.Date
}

func (r TransferRequest) body() transferRequest {
	return transferRequest{
		PlayerID:      r.PlayerID,
		NewClubID:     r.NewClubID,
		ReleaseClause: int64(r.ReleaseClause),
		ContractStart: r.ContractStart.String(),
		ContractEnd:   r.ContractEnd.String(),
	}
}

// TransferResult is what the service reports after a transfer. Both fields
// may be empty; the service is free to answer with an empty body.
type TransferResult struct {
	Message  string              `json:"message,omitempty" yaml:"message,omitempty"`
	Contract *contracts.Contract `json:"contract,omitempty" yaml:"contract,omitempty"`
}

// LoginResult carries the bearer token and, when the service includes one,
// the user profile.
type LoginResult struct {
	Token string
	User  *users.User
}
