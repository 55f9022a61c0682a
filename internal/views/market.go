package views

import (
	"context"
	"fmt"

	"github.com/preston-bernstein/transfer-console/internal/domain/market"
	"github.com/preston-bernstein/transfer-console/internal/domain/money"
	"github.com/preston-bernstein/transfer-console/internal/gateway"
)

// MarketFilters bound the transfer market listing in base units. A zero
// bound is unset.
type MarketFilters struct {
	MinReleaseClause money.Amount
	MaxReleaseClause money.Amount
	MinValue         money.Amount
	MaxValue         money.Amount
}

// MarketFiltersFromMillions converts bounds entered in millions. A bound that
// does not fit an Amount fails with money.ErrOutOfRange.
func MarketFiltersFromMillions(minRelease, maxRelease, minValue, maxValue int64) (MarketFilters, error) {
	var f MarketFilters
	for _, b := range []struct {
		name string
		m    int64
		dst  *money.Amount
	}{
		{"min_release", minRelease, &f.MinReleaseClause},
		{"max_release", maxRelease, &f.MaxReleaseClause},
		{"min_value", minValue, &f.MinValue},
		{"max_value", maxValue, &f.MaxValue},
	} {
		a, err := money.ParseMillions(b.m)
		if err != nil {
			return MarketFilters{}, fmt.Errorf("%s: %w", b.name, err)
		}
		*b.dst = a
	}
	return f, nil
}

// Millions returns the bounds in millions, the unit operators edit them in.
func (f MarketFilters) Millions() (minRelease, maxRelease, minValue, maxValue int64) {
	return f.MinReleaseClause.Millions(), f.MaxReleaseClause.Millions(), f.MinValue.Millions(), f.MaxValue.Millions()
}

func (f MarketFilters) matches(l market.Listing) bool {
	return inRange(l.Contract.ReleaseClause, f.MinReleaseClause, f.MaxReleaseClause) &&
		inRange(l.Player.Value, f.MinValue, f.MaxValue)
}

func inRange(v, min, max money.Amount) bool {
	if min > 0 && v < min {
		return false
	}
	if max > 0 && v > max {
		return false
	}
	return true
}

// MarketController backs the transfer market listing. It is admin-only.
type MarketController struct {
	*Controller[MarketFilters, market.Listing]
	api gateway.MarketAPI
}

// NewMarketController builds the market view.
func NewMarketController(api gateway.MarketAPI, session Session, opts ...ControllerOption) *MarketController {
	mc := &MarketController{api: api}
	gate := func() error { return RequireAdmin(session) }
	mc.Controller = NewController[MarketFilters, market.Listing]("market", MarketFilters{}, mc.load, gate, opts...)
	return mc
}

func (mc *MarketController) load(ctx context.Context, f MarketFilters) ([]market.Listing, error) {
	all, err := mc.api.TransferMarket(ctx)
	if err != nil {
		return nil, err
	}
	return FilterListings(all, f), nil
}

// FilterListings applies f to market rows.
func FilterListings(in []market.Listing, f MarketFilters) []market.Listing {
	out := make([]market.Listing, 0, len(in))
	for _, l := range in {
		if f.matches(l) {
			out = append(out, l)
		}
	}
	return out
}
