package players

import (
	"fmt"

	"github.com/preston-bernstein/transfer-console/internal/domain/clubs"
	"github.com/preston-bernstein/transfer-console/internal/domain/contracts"
	"github.com/preston-bernstein/transfer-console/internal/domain/money"
	"github.com/preston-bernstein/transfer-console/internal/domain/nationalities"
	"github.com/preston-bernstein/transfer-console/internal/timeutil"
)

// Position is the player's category; outfield players and goalkeepers carry different skill sets.
type Position string

const (
	PositionOutfield   Position = "Outfield"
	PositionGoalkeeper Position = "Goalkeeper"
)

// OutfieldSkills are the attributes rated for non-goalkeepers.
type OutfieldSkills struct {
	Pace      int `json:"pace" yaml:"pace"`
	Shooting  int `json:"shooting" yaml:"shooting"`
	Passing   int `json:"passing" yaml:"passing"`
	Dribbling int `json:"dribbling" yaml:"dribbling"`
	Defending int `json:"defending" yaml:"defending"`
	Physical  int `json:"physical" yaml:"physical"`
}

// GoalkeeperSkills are the attributes rated for goalkeepers.
type GoalkeeperSkills struct {
	Reflexes    int `json:"reflexes" yaml:"reflexes"`
	Diving      int `json:"diving" yaml:"diving"`
	Handling    int `json:"handling" yaml:"handling"`
	Positioning int `json:"positioning" yaml:"positioning"`
	Speed       int `json:"speed" yaml:"speed"`
}

// Player is a player record owned by the remote service.
// Exactly one of Outfield or Goalkeeper is set, matching Position.
type Player struct {
	ID          int                       `json:"id" yaml:"id"`
	Name        string                    `json:"name" yaml:"name"`
	Position    Position                  `json:"position" yaml:"position"`
	Nationality nationalities.Nationality `json:"nationality" yaml:"nationality"`
	Club        clubs.Ref                 `json:"club" yaml:"club"`
	Overall     int                       `json:"overall" yaml:"overall"`
	Value       money.Amount              `json:"value" yaml:"value"`
	DateOfBirth timeutil.Date             `json:"dateOfBirth" yaml:"dateOfBirth"`
	Outfield    *OutfieldSkills           `json:"outfield,omitempty" yaml:"outfield,omitempty"`
	Goalkeeper  *GoalkeeperSkills         `json:"goalkeeper,omitempty" yaml:"goalkeeper,omitempty"`
	Contract    *contracts.Contract       `json:"contract,omitempty" yaml:"contract,omitempty"`
}

// Key identifies a player across both upstream tables; outfield and goalkeeper ids overlap.
func (p Player) Key() string {
	return fmt.Sprintf("%s-%d", p.Position, p.ID)
}

// IsGoalkeeper reports whether the player is a goalkeeper.
func (p Player) IsGoalkeeper() bool {
	return p.Position == PositionGoalkeeper
}

// CurrentClubID returns the club the player is contracted to, preferring the contract's club.
func (p Player) CurrentClubID() int {
	if p.Contract != nil && p.Contract.Club.ID != 0 {
		return p.Contract.Club.ID
	}
	return p.Club.ID
}

// Squad is a club together with its roster.
type Squad struct {
	Club    clubs.Club `json:"club" yaml:"club"`
	Players []Player   `json:"players" yaml:"players"`
}

// Goalkeepers returns the goalkeepers on the roster.
func (s Squad) Goalkeepers() []Player {
	return s.byPosition(PositionGoalkeeper)
}

// Outfield returns the outfield players on the roster.
func (s Squad) Outfield() []Player {
	return s.byPosition(PositionOutfield)
}

func (s Squad) byPosition(pos Position) []Player {
	out := make([]Player, 0, len(s.Players))
	for _, p := range s.Players {
		if p.Position == pos {
			out = append(out, p)
		}
	}
	return out
}
