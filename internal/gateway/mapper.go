package gateway

import (
	"strings"

	"github.com/preston-bernstein/transfer-console/internal/domain/clubs"
	"github.com/preston-bernstein/transfer-console/internal/domain/contracts"
	"github.com/preston-bernstein/transfer-console/internal/domain/market"
	"github.com/preston-bernstein/transfer-console/internal/domain/money"
	"github.com/preston-bernstein/transfer-console/internal/domain/nationalities"
	"github.com/preston-bernstein/transfer-console/internal/domain/players"
	"github.com/preston-bernstein/transfer-console/internal/domain/users"
	"github.com/preston-bernstein/transfer-console/internal/timeutil"
)

func mapNationality(n nationalityResponse) nationalities.Nationality {
	return nationalities.Nationality{ID: n.NationalityID, Name: n.NationalityName}
}

func mapNationalities(in []nationalityResponse) []nationalities.Nationality {
	out := make([]nationalities.Nationality, 0, len(in))
	for _, n := range in {
		out = append(out, mapNationality(n))
	}
	return out
}

func resolveNationality(nested *nationalityResponse, id int, name string) nationalities.Nationality {
	if nested != nil {
		return mapNationality(*nested)
	}
	return nationalities.Nationality{ID: id, Name: name}
}

func mapClub(c clubResponse) clubs.Club {
	return clubs.Club{
		ID:          c.ClubID,
		Name:        c.ClubName,
		League:      c.LeagueName,
		Nationality: resolveNationality(c.Nationality, c.NationalityID, c.NationalityName),
	}
}

func mapClubs(in []clubResponse) []clubs.Club {
	out := make([]clubs.Club, 0, len(in))
	for _, c := range in {
		out = append(out, mapClub(c))
	}
	return out
}

func resolveClubRef(nested *clubResponse, id int, name, league string) clubs.Ref {
	if nested != nil {
		return mapClub(*nested).Ref()
	}
	return clubs.Ref{ID: id, Name: name, League: league}
}

func mapContract(c contractResponse, issues *dateIssues) contracts.Contract {
	start := issues.parse("date_of_join", c.DateOfJoin)
	end := issues.parse("date_of_end", c.DateOfEnd)
	return contracts.Contract{
		Club:          resolveClubRef(c.Club, c.ClubID, c.ClubName, c.LeagueName),
		Start:         start,
		End:           end,
		ReleaseClause: money.Amount(c.ReleaseClause),
	}
}

// mapPlayer converts a wire record. fallback is the position implied by the
// endpoint; when empty the position comes from the record itself.
func mapPlayer(p playerResponse, fallback players.Position, issues *dateIssues) players.Player {
	dob := issues.parse("dob", p.DOB)
	out := players.Player{
		ID:          p.PlayerID,
		Name:        p.Name,
		Position:    resolvePosition(p, fallback),
		Nationality: resolveNationality(p.Nationality, p.NationalityID, p.NationalityName),
		Club:        resolveClubRef(p.Club, p.ClubID, p.ClubName, p.LeagueName),
		Overall:     p.Overall,
		Value:       money.Amount(p.Value),
		DateOfBirth: dob,
	}
	if out.Position == players.PositionGoalkeeper {
		out.Goalkeeper = &players.GoalkeeperSkills{
			Reflexes:    deref(p.Reflexes),
			Diving:      deref(p.Diving),
			Handling:    deref(p.Handling),
			Positioning: deref(p.Positioning),
			Speed:       deref(p.Speed),
		}
	} else {
		out.Outfield = &players.OutfieldSkills{
			Pace:      deref(p.Pace),
			Shooting:  deref(p.Shooting),
			Passing:   deref(p.Passing),
			Dribbling: deref(p.Dribbling),
			Defending: deref(p.Defending),
			Physical:  deref(p.Physical),
		}
	}
	if p.Contract != nil {
		c := mapContract(*p.Contract, issues)
		out.Contract = &c
	}
	return out
}

func mapPlayers(in []playerResponse, fallback players.Position, issues *dateIssues) []players.Player {
	out := make([]players.Player, 0, len(in))
	for _, p := range in {
		out = append(out, mapPlayer(p, fallback, issues))
	}
	return out
}

func resolvePosition(p playerResponse, fallback players.Position) players.Position {
	switch {
	case strings.EqualFold(p.Position, string(players.PositionGoalkeeper)), strings.EqualFold(p.Position, "gk"):
		return players.PositionGoalkeeper
	case p.Position != "":
		return players.PositionOutfield
	case fallback != "":
		return fallback
	case p.Reflexes != nil || p.Diving != nil || p.Handling != nil:
		return players.PositionGoalkeeper
	default:
		return players.PositionOutfield
	}
}

func mapSquad(in clubDetailResponse, issues *dateIssues) players.Squad {
	club := in.clubResponse
	if in.Club != nil {
		club = *in.Club
	}
	return players.Squad{
		Club:    mapClub(club),
		Players: mapPlayers(in.Players, "", issues),
	}
}

func mapListing(l listingResponse, issues *dateIssues) market.Listing {
	player := mapPlayer(l.Player, "", issues)
	contract := mapContract(l.Contract, issues)
	player.Contract = &contract
	return market.Listing{Player: player, Contract: contract}
}

func mapListings(in []listingResponse, issues *dateIssues) []market.Listing {
	out := make([]market.Listing, 0, len(in))
	for _, l := range in {
		out = append(out, mapListing(l, issues))
	}
	return out
}

func mapUser(u *userResponse) *users.User {
	if u == nil {
		return nil
	}
	return &users.User{
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Role:     users.Role(u.Role),
	}
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// dateIssues counts wire dates that could not be parsed while mapping one
// response. Unparsable dates map to the zero Date. A nil *dateIssues only
// parses.
type dateIssues struct {
	count int
	first string
}

func (d *dateIssues) parse(field, raw string) timeutil.Date {
	day, err := timeutil.ParseDay(raw)
	if err != nil && d != nil {
		if d.count == 0 {
			d.first = field + "=" + strings.TrimSpace(raw)
		}
		d.count++
	}
	return day
}
