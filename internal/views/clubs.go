package views

import (
	"context"
	"strings"

	"github.com/preston-bernstein/transfer-console/internal/domain/clubs"
	"github.com/preston-bernstein/transfer-console/internal/gateway"
)

// ClubFilters are the clubs view criteria.
type ClubFilters struct {
	// Search matches club or league names, case-insensitively.
	Search        string
	NationalityID int
}

// ClubsController backs the clubs listing.
type ClubsController struct {
	*Controller[ClubFilters, clubs.Club]
	api gateway.ClubAPI
}

// NewClubsController builds the clubs view. A logged-in user is required.
func NewClubsController(api gateway.ClubAPI, session Session, opts ...ControllerOption) *ClubsController {
	cc := &ClubsController{api: api}
	gate := func() error { return RequireLogin(session) }
	cc.Controller = NewController[ClubFilters, clubs.Club]("clubs", ClubFilters{}, cc.load, gate, opts...)
	return cc
}

func (cc *ClubsController) load(ctx context.Context, f ClubFilters) ([]clubs.Club, error) {
	all, err := cc.api.ListClubs(ctx)
	if err != nil {
		return nil, err
	}
	return FilterClubs(all, f), nil
}

// FilterClubs applies f to a club list.
func FilterClubs(in []clubs.Club, f ClubFilters) []clubs.Club {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]clubs.Club, 0, len(in))
	for _, c := range in {
		if f.NationalityID > 0 && c.Nationality.ID != f.NationalityID {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(c.Name), term) &&
			!strings.Contains(strings.ToLower(c.League), term) {
			continue
		}
		out = append(out, c)
	}
	return out
}
