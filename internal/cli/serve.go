package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/preston-bernstein/transfer-console/internal/config"
	"github.com/preston-bernstein/transfer-console/internal/server"
)

func defaultServe(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()
	server.New(cfg, logger).Run(ctx, stop)
	return nil
}

func serveCommand(rt *runtime, serve ServeFunc) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the console API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "listen port (env PORT)"},
			&cli.StringSliceFlag{Name: "allow-origin", Usage: "CORS origin; repeatable (env CORS_ALLOWED_ORIGINS)"},
			&cli.BoolFlag{Name: "metrics", Usage: "expose Prometheus metrics (env METRICS_ENABLED)"},
		},
		Action: func(c *cli.Context) error {
			cfg := rt.cfg
			if c.IsSet("port") {
				cfg.Console.Port = c.String("port")
			}
			if c.IsSet("allow-origin") {
				cfg.Console.AllowedOrigins = c.StringSlice("allow-origin")
			}
			if c.IsSet("metrics") {
				cfg.Metrics.Enabled = c.Bool("metrics")
			}
			return serve(c.Context, cfg, rt.logger)
		},
	}
}
