package testutil

import (
	"github.com/preston-bernstein/transfer-console/internal/domain/clubs"
	"github.com/preston-bernstein/transfer-console/internal/domain/contracts"
	"github.com/preston-bernstein/transfer-console/internal/domain/money"
	"github.com/preston-bernstein/transfer-console/internal/domain/nationalities"
	"github.com/preston-bernstein/transfer-console/internal/domain/players"
	"github.com/preston-bernstein/transfer-console/internal/timeutil"
)

// SampleNationalities returns a small fixed nationality list.
func SampleNationalities() []nationalities.Nationality {
	return []nationalities.Nationality{
		{ID: 1, Name: "Spain"},
		{ID: 2, Name: "England"},
		{ID: 3, Name: "Croatia"},
	}
}

// SampleClubs returns clubs matching SampleNationalities.
func SampleClubs() []clubs.Club {
	nats := SampleNationalities()
	return []clubs.Club{
		{ID: 10, Name: "Real Madrid", League: "LaLiga", Nationality: nats[0]},
		{ID: 20, Name: "Arsenal", League: "Premier League", Nationality: nats[1]},
		{ID: 30, Name: "Dinamo Zagreb", League: "HNL", Nationality: nats[2]},
	}
}

// SampleOutfielder returns an outfield player contracted to clubID.
func SampleOutfielder(id int, name string, clubID int) players.Player {
	p := basePlayer(id, name, clubID, players.PositionOutfield)
	p.Outfield = &players.OutfieldSkills{Pace: 70, Shooting: 70, Passing: 70, Dribbling: 70, Defending: 50, Physical: 60}
	return p
}

// SampleGoalkeeper returns a goalkeeper contracted to clubID.
func SampleGoalkeeper(id int, name string, clubID int) players.Player {
	p := basePlayer(id, name, clubID, players.PositionGoalkeeper)
	p.Goalkeeper = &players.GoalkeeperSkills{Reflexes: 80, Diving: 80, Handling: 75, Positioning: 78, Speed: 50}
	return p
}

func basePlayer(id int, name string, clubID int, pos players.Position) players.Player {
	club := clubByID(clubID)
	return players.Player{
		ID:          id,
		Name:        name,
		Position:    pos,
		Nationality: club.Nationality,
		Club:        club.Ref(),
		Overall:     80,
		Value:       money.FromMillions(20),
		DateOfBirth: timeutil.NewDate(1995, 5, 17),
		Contract: &contracts.Contract{
			Club:          club.Ref(),
			Start:         timeutil.NewDate(2022, 7, 1),
			End:           timeutil.NewDate(2026, 6, 30),
			ReleaseClause: money.FromMillions(50),
		},
	}
}

func clubByID(id int) clubs.Club {
	for _, c := range SampleClubs() {
		if c.ID == id {
			return c
		}
	}
	return clubs.Club{ID: id}
}

// SamplePlayers returns two outfielders followed by one goalkeeper.
func SamplePlayers() []players.Player {
	return []players.Player{
		SampleOutfielder(1, "Luka Modric", 10),
		SampleOutfielder(2, "Bukayo Saka", 20),
		SampleGoalkeeper(1, "Thibaut Courtois", 10),
	}
}
