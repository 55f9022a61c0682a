package gateway

import (
	"testing"

	"github.com/preston-bernstein/transfer-console/internal/domain/players"
)

func intPtr(v int) *int { return &v }

func TestResolvePosition(t *testing.T) {
	cases := []struct {
		name     string
		in       playerResponse
		fallback players.Position
		want     players.Position
	}{
		{"explicit goalkeeper", playerResponse{Position: "goalkeeper"}, "", players.PositionGoalkeeper},
		{"abbreviation", playerResponse{Position: "GK"}, players.PositionOutfield, players.PositionGoalkeeper},
		{"explicit other", playerResponse{Position: "ST"}, players.PositionGoalkeeper, players.PositionOutfield},
		{"endpoint fallback", playerResponse{}, players.PositionGoalkeeper, players.PositionGoalkeeper},
		{"goalkeeper stats", playerResponse{Reflexes: intPtr(80)}, "", players.PositionGoalkeeper},
		{"default outfield", playerResponse{Pace: intPtr(80)}, "", players.PositionOutfield},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolvePosition(tc.in, tc.fallback); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestMapPlayerPrefersNestedReferences(t *testing.T) {
	p := mapPlayer(playerResponse{
		PlayerID:        1,
		ClubID:          9,
		ClubName:        "flat",
		Club:            &clubResponse{ClubID: 2, ClubName: "Nested", LeagueName: "Serie A"},
		NationalityName: "flat",
		Nationality:     &nationalityResponse{NationalityID: 5, NationalityName: "Italy"},
	}, "", nil)
	if p.Club.ID != 2 || p.Club.Name != "Nested" || p.Club.League != "Serie A" {
		t.Fatalf("unexpected club %+v", p.Club)
	}
	if p.Nationality.ID != 5 || p.Nationality.Name != "Italy" {
		t.Fatalf("unexpected nationality %+v", p.Nationality)
	}
}

func TestMapPlayerToleratesBadDates(t *testing.T) {
	issues := &dateIssues{}
	p := mapPlayer(playerResponse{
		PlayerID: 1,
		DOB:      "not a date",
		Contract: &contractResponse{DateOfJoin: "2022-07-01", DateOfEnd: "someday"},
	}, "", issues)
	if !p.DateOfBirth.IsZero() || !p.Contract.End.IsZero() || p.Contract.Start.IsZero() {
		t.Fatalf("expected only bad dates zeroed, got %+v %+v", p.DateOfBirth, p.Contract)
	}
	if issues.count != 2 || issues.first != "dob=not a date" {
		t.Fatalf("unexpected issues %+v", issues)
	}
	mapPlayer(playerResponse{PlayerID: 1}, "", issues)
	if issues.count != 2 {
		t.Fatal("empty dates are not issues")
	}
}

func TestMapSquadReadsWrappedClub(t *testing.T) {
	squad := mapSquad(clubDetailResponse{Club: &clubResponse{ClubID: 4, ClubName: "Porto"}}, nil)
	if squad.Club.ID != 4 || squad.Club.Name != "Porto" {
		t.Fatalf("unexpected club %+v", squad.Club)
	}
	if squad.Players == nil {
		t.Fatal("expected empty roster, not nil")
	}
}
