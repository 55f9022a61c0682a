package views

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/transfer-console/internal/domain/clubs"
	"github.com/preston-bernstein/transfer-console/internal/domain/nationalities"
	"github.com/preston-bernstein/transfer-console/internal/gateway"
)

// Lookups are the reference lists filter pickers are populated from.
type Lookups struct {
	Nationalities []nationalities.Nationality `json:"nationalities" yaml:"nationalities"`
	Clubs         []clubs.Club                `json:"clubs" yaml:"clubs"`
}

// LoadLookups fetches nationalities and clubs concurrently and waits for both.
func LoadLookups(ctx context.Context, api gateway.ClubAPI) (Lookups, error) {
	var out Lookups
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.Nationalities, err = api.ListNationalities(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		out.Clubs, err = api.ListClubs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Lookups{}, err
	}
	return out, nil
}

// ClubName returns the name for a club id, or "" when unknown.
func (l Lookups) ClubName(id int) string {
	for _, c := range l.Clubs {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}
