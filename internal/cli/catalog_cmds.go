package cli

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/preston-bernstein/transfer-console/internal/domain/clubs"
	"github.com/preston-bernstein/transfer-console/internal/domain/players"
	"github.com/preston-bernstein/transfer-console/internal/views"
)

func (rt *runtime) viewOptions() []views.ControllerOption {
	return []views.ControllerOption{views.WithLogger(rt.logger), views.WithMetrics(rt.metrics)}
}

func idArg(c *cli.Context, what string) (int, error) {
	raw := c.Args().First()
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s id must be a positive integer, got %q", what, raw)
	}
	return id, nil
}

func playersCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "players",
		Usage: "browse players",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "search players",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "name prefix"},
					&cli.StringFlag{Name: "tab", Value: string(views.TabAll), Usage: "all, outfield or goalkeepers"},
					&cli.IntFlag{Name: "nationality", Usage: "nationality id"},
					&cli.IntFlag{Name: "club", Usage: "club id"},
					&cli.IntFlag{Name: "min-overall"},
					&cli.IntFlag{Name: "max-overall"},
					&cli.IntFlag{Name: "page", Value: 1},
					&cli.IntFlag{Name: "page-size", Usage: "0 lists everything"},
				},
				Action: func(c *cli.Context) error {
					tab, err := views.ParseTab(c.String("tab"))
					if err != nil {
						return err
					}
					view := views.NewPlayersController(rt.api, rt.session, rt.viewOptions()...)
					err = view.Apply(c.Context, views.PlayerFilters{
						Search:        c.String("search"),
						NationalityID: c.Int("nationality"),
						ClubID:        c.Int("club"),
						MinOverall:    c.Int("min-overall"),
						MaxOverall:    c.Int("max-overall"),
						Tab:           tab,
						Page:          c.Int("page"),
						PageSize:      c.Int("page-size"),
					})
					if err != nil {
						return err
					}
					found := view.Results()
					return rt.out.print(found, playerTable(found))
				},
			},
			{
				Name:      "show",
				Usage:     "show one player",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					id, err := idArg(c, "player")
					if err != nil {
						return err
					}
					if err := views.RequireLogin(rt.session); err != nil {
						return err
					}
					p, err := rt.api.GetPlayer(c.Context, id)
					if err != nil {
						return err
					}
					return rt.out.print(p, playerDetail(p))
				},
			},
		},
	}
}

func playerTable(ps []players.Player) *table {
	t := &table{header: []string{"ID", "NAME", "POSITION", "CLUB", "NATIONALITY", "OVERALL", "VALUE"}}
	for _, p := range ps {
		t.add(p.ID, p.Name, p.Position, p.Club.Name, p.Nationality.Name, p.Overall, p.Value)
	}
	return t
}

func playerDetail(p players.Player) *table {
	t := &table{}
	t.add("Name", p.Name)
	t.add("Position", p.Position)
	t.add("Club", p.Club.Name)
	t.add("Nationality", p.Nationality.Name)
	t.add("Born", p.DateOfBirth)
	t.add("Overall", p.Overall)
	t.add("Value", p.Value)
	if s := p.Outfield; s != nil {
		t.add("Skills", fmt.Sprintf("PAC %d  SHO %d  PAS %d  DRI %d  DEF %d  PHY %d", s.Pace, s.Shooting, s.Passing, s.Dribbling, s.Defending, s.Physical))
	}
	if s := p.Goalkeeper; s != nil {
		t.add("Skills", fmt.Sprintf("REF %d  DIV %d  HAN %d  POS %d  SPD %d", s.Reflexes, s.Diving, s.Handling, s.Positioning, s.Speed))
	}
	if c := p.Contract; c != nil {
		t.add("Contract", fmt.Sprintf("%s to %s, release clause %s", c.Start, c.End, c.ReleaseClause))
	}
	return t
}

func clubsCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "clubs",
		Usage: "browse clubs",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list clubs",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "matches club or league name"},
					&cli.IntFlag{Name: "nationality", Usage: "nationality id"},
				},
				Action: func(c *cli.Context) error {
					view := views.NewClubsController(rt.api, rt.session, rt.viewOptions()...)
					err := view.Apply(c.Context, views.ClubFilters{Search: c.String("search"), NationalityID: c.Int("nationality")})
					if err != nil {
						return err
					}
					found := view.Results()
					return rt.out.print(found, clubTable(found))
				},
			},
			{
				Name:      "show",
				Usage:     "show a club and its squad",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					id, err := idArg(c, "club")
					if err != nil {
						return err
					}
					if err := views.RequireLogin(rt.session); err != nil {
						return err
					}
					squad, err := rt.api.GetClub(c.Context, id)
					if err != nil {
						return err
					}
					return rt.out.print(squad, squadTable(squad))
				},
			},
		},
	}
}

func clubTable(cs []clubs.Club) *table {
	t := &table{header: []string{"ID", "NAME", "LEAGUE", "NATIONALITY"}}
	for _, c := range cs {
		t.add(c.ID, c.Name, c.League, c.Nationality.Name)
	}
	return t
}

// squadTable lists goalkeepers first, then outfield players.
func squadTable(s players.Squad) *table {
	t := &table{header: []string{"ID", "NAME", "POSITION", "OVERALL", "VALUE"}}
	for _, group := range [][]players.Player{s.Goalkeepers(), s.Outfield()} {
		for _, p := range group {
			t.add(p.ID, p.Name, p.Position, p.Overall, p.Value)
		}
	}
	return t
}

func nationalitiesCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "nationalities",
		Usage: "list nationalities",
		Action: func(c *cli.Context) error {
			if err := views.RequireLogin(rt.session); err != nil {
				return err
			}
			list, err := rt.api.ListNationalities(c.Context)
			if err != nil {
				return err
			}
			t := &table{header: []string{"ID", "NAME"}}
			for _, n := range list {
				t.add(n.ID, n.Name)
			}
			return rt.out.print(list, t)
		},
	}
}
