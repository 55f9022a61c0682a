package cli

import (
	"github.com/urfave/cli/v2"

	"github.com/preston-bernstein/transfer-console/internal/domain/users"
	"github.com/preston-bernstein/transfer-console/internal/views"
)

type whoami struct {
	User    users.User `json:"user" yaml:"user"`
	IsAdmin bool       `json:"isAdmin" yaml:"isAdmin"`
}

func loginCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "log in and remember the session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, EnvVars: []string{"CONSOLE_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			user, err := rt.session.Login(c.Context, c.String("username"), c.String("password"))
			if err != nil {
				return err
			}
			return rt.out.message(whoami{User: user, IsAdmin: user.IsAdmin()}, "logged in as %s (%s)", user.Username, user.Role)
		},
	}
}

func logoutCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "forget the session",
		Action: func(c *cli.Context) error {
			if err := rt.session.Logout(); err != nil {
				return err
			}
			return rt.out.message(map[string]string{"status": "logged out"}, "logged out")
		},
	}
}

func whoamiCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the logged-in user",
		Action: func(c *cli.Context) error {
			user, ok := rt.session.CurrentUser()
			if !ok {
				return views.ErrLoginRequired
			}
			return rt.out.message(whoami{User: user, IsAdmin: rt.session.IsAdmin()}, "%s (%s)", user.Username, user.Role)
		},
	}
}
