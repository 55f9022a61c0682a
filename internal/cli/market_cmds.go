package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/preston-bernstein/transfer-console/internal/domain/market"
	"github.com/preston-bernstein/transfer-console/internal/logging"
	"github.com/preston-bernstein/transfer-console/internal/timeutil"
	"github.com/preston-bernstein/transfer-console/internal/transfer"
	"github.com/preston-bernstein/transfer-console/internal/views"
	"github.com/preston-bernstein/transfer-console/internal/watcher"
)

var marketFlags = []cli.Flag{
	&cli.Int64Flag{Name: "min-release", Usage: "minimum release clause in millions"},
	&cli.Int64Flag{Name: "max-release", Usage: "maximum release clause in millions"},
	&cli.Int64Flag{Name: "min-value", Usage: "minimum market value in millions"},
	&cli.Int64Flag{Name: "max-value", Usage: "maximum market value in millions"},
}

func marketFilters(c *cli.Context) (views.MarketFilters, error) {
	return views.MarketFiltersFromMillions(c.Int64("min-release"), c.Int64("max-release"), c.Int64("min-value"), c.Int64("max-value"))
}

func listingTable(ls []market.Listing) *table {
	t := &table{header: []string{"ID", "NAME", "CLUB", "VALUE", "RELEASE CLAUSE", "CONTRACT END"}}
	for _, l := range ls {
		t.add(l.Player.ID, l.Player.Name, l.Contract.Club.Name, l.Player.Value, l.Contract.ReleaseClause, l.Contract.End)
	}
	return t
}

// marketRefresher re-applies fixed filters on each watcher cycle.
type marketRefresher struct {
	view    *views.MarketController
	filters views.MarketFilters
}

func (m marketRefresher) Refresh(ctx context.Context) error {
	return m.view.Apply(ctx, m.filters)
}

func marketCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "market",
		Usage: "the transfer market (admin)",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list players on the market",
				Flags: marketFlags,
				Action: func(c *cli.Context) error {
					filters, err := marketFilters(c)
					if err != nil {
						return err
					}
					view := views.NewMarketController(rt.api, rt.session, rt.viewOptions()...)
					if err := view.Apply(c.Context, filters); err != nil {
						return err
					}
					found := view.Results()
					return rt.out.print(found, listingTable(found))
				},
			},
			{
				Name:  "watch",
				Usage: "refresh the market listing on an interval",
				Flags: append([]cli.Flag{
					&cli.DurationFlag{Name: "interval", Usage: "refresh interval (env MARKET_REFRESH_INTERVAL)"},
					&cli.IntFlag{Name: "cycles", Usage: "stop after this many refreshes; 0 runs until interrupted"},
				}, marketFlags...),
				Action: func(c *cli.Context) error {
					return rt.watchMarket(c)
				},
			},
		},
	}
}

func (rt *runtime) watchMarket(c *cli.Context) error {
	if err := views.RequireAdmin(rt.session); err != nil {
		return err
	}
	filters, err := marketFilters(c)
	if err != nil {
		return err
	}
	interval := rt.cfg.Console.MarketInterval
	if c.IsSet("interval") {
		interval = c.Duration("interval")
	}
	limit := c.Int("cycles")

	view := views.NewMarketController(rt.api, rt.session, rt.viewOptions()...)
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	cycles := 0
	w := watcher.New("market", marketRefresher{view: view, filters: filters}, rt.logger, rt.metrics, interval,
		watcher.WithClock(rt.clock),
		watcher.WithOnCycle(func(err error) {
			cycles++
			if err != nil {
				fmt.Fprintf(c.App.ErrWriter, "refresh failed: %v\n", err)
			} else {
				found := view.Results()
				if perr := rt.out.print(found, listingTable(found)); perr != nil {
					logging.Warn(rt.logger, "failed to print market", "error", perr)
				}
			}
			if limit > 0 && cycles >= limit {
				cancel()
			}
		}),
	)
	w.Start(ctx)
	<-ctx.Done()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	return w.Stop(stopCtx)
}

func transferCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "transfer",
		Usage: "move a player to another club (admin)",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "player", Required: true, Usage: "player id"},
			&cli.IntFlag{Name: "club", Required: true, Usage: "destination club id"},
			&cli.Int64Flag{Name: "release-clause", Usage: "release clause in millions; defaults to the current one"},
			&cli.StringFlag{Name: "start", Usage: "contract start `YYYY-MM-DD`; defaults to today"},
			&cli.StringFlag{Name: "end", Usage: "contract end `YYYY-MM-DD`; defaults to three years after today"},
		},
		Action: func(c *cli.Context) error {
			return rt.transfer(c)
		},
	}
}

func (rt *runtime) transfer(c *cli.Context) error {
	if err := views.RequireAdmin(rt.session); err != nil {
		return err
	}
	player, err := rt.api.GetPlayer(c.Context, c.Int("player"))
	if err != nil {
		return err
	}

	wf := transfer.New(rt.api, rt.session, transfer.WithClock(rt.clock), transfer.WithLogger(rt.logger))
	if err := wf.SelectPlayer(player); err != nil {
		return err
	}
	if err := wf.SetDestination(c.Int("club")); err != nil {
		return err
	}
	if c.IsSet("release-clause") {
		if err := wf.SetReleaseClauseMillions(c.Int64("release-clause")); err != nil {
			return err
		}
	}
	for _, d := range []struct {
		flag  string
		field string
		set   func(timeutil.Date) error
	}{
		{"start", transfer.FieldStart, wf.SetStart},
		{"end", transfer.FieldEnd, wf.SetEnd},
	} {
		if !c.IsSet(d.flag) {
			continue
		}
		day, err := timeutil.ParseDay(c.String(d.flag))
		if err != nil {
			return &transfer.ValidationError{Fields: []transfer.FieldError{{Field: d.field, Message: "must be a date (YYYY-MM-DD)"}}}
		}
		if err := d.set(day); err != nil {
			return err
		}
	}

	res, err := wf.Submit(c.Context)
	if err != nil {
		return err
	}
	msg := res.Message
	if msg == "" {
		msg = "transfer completed"
	}
	return rt.out.message(res, "%s: %s", player.Name, msg)
}
