package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/urfave/cli/v2"

	"github.com/preston-bernstein/transfer-console/internal/config"
	"github.com/preston-bernstein/transfer-console/internal/gateway"
	"github.com/preston-bernstein/transfer-console/internal/logging"
	"github.com/preston-bernstein/transfer-console/internal/metrics"
	"github.com/preston-bernstein/transfer-console/internal/session"
)

// AppName is the binary name shown in help output.
const AppName = "transfer-console"

// ClientFactory builds the API client for a configuration and token source.
type ClientFactory func(cfg config.Config, logger *slog.Logger, rec *metrics.Recorder, tokens gateway.TokenSource) gateway.API

// ServeFunc runs the console API until ctx is cancelled.
type ServeFunc func(ctx context.Context, cfg config.Config, logger *slog.Logger) error

// Options are the collaborators the CLI needs. Zero values select the
// production implementations.
type Options struct {
	Version string
	Out     io.Writer
	Err     io.Writer
	Clients ClientFactory
	Serve   ServeFunc
	Clock   clockwork.Clock
}

// runtime is what every command works with once flags are parsed.
type runtime struct {
	cfg     config.Config
	logger  *slog.Logger
	metrics *metrics.Recorder
	api     gateway.API
	session *session.Store
	out     *printer
	clock   clockwork.Clock
}

// NewApp builds the command tree.
func NewApp(opts Options) *cli.App {
	opts = withDefaults(opts)
	rt := &runtime{clock: opts.Clock}

	return &cli.App{
		Name:      AppName,
		Usage:     "browse players and clubs and run transfers against the player management service",
		Version:   opts.Version,
		Writer:    opts.Out,
		ErrWriter: opts.Err,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "`FILE` to seed the environment from; missing files are ignored"},
			&cli.StringFlag{Name: "api-url", Usage: "base `URL` of the player management service (env API_BASE_URL)"},
			&cli.DurationFlag{Name: "timeout", Usage: "per-request timeout, 0 to disable (env API_TIMEOUT)"},
			&cli.StringFlag{Name: "session-dir", Usage: "`DIR` holding the session file (env SESSION_DIR)"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: FormatText, Usage: "output format: text, json or yaml"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error (env LOG_LEVEL)"},
		},
		Before: func(c *cli.Context) error {
			return rt.init(c, opts)
		},
		Commands: []*cli.Command{
			loginCommand(rt),
			logoutCommand(rt),
			whoamiCommand(rt),
			playersCommand(rt),
			clubsCommand(rt),
			nationalitiesCommand(rt),
			marketCommand(rt),
			transferCommand(rt),
			serveCommand(rt, opts.Serve),
		},
		// main reports errors and picks the exit code.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// Run executes the CLI with args (args[0] is the program name).
func Run(ctx context.Context, args []string, opts Options) error {
	return NewApp(opts).RunContext(ctx, args)
}

func withDefaults(opts Options) Options {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.Clients == nil {
		opts.Clients = defaultClients
	}
	if opts.Serve == nil {
		opts.Serve = defaultServe
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return opts
}

func defaultClients(cfg config.Config, logger *slog.Logger, rec *metrics.Recorder, tokens gateway.TokenSource) gateway.API {
	return gateway.NewClient(gateway.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		RateLimit: cfg.API.RateLimit,
		RateBurst: cfg.API.RateBurst,
		Tokens:    tokens,
		Logger:    logger,
		Metrics:   rec,
	})
}

func (rt *runtime) init(c *cli.Context, opts Options) error {
	if err := config.LoadDotEnv(c.String("env-file")); err != nil {
		return fmt.Errorf("load %s: %w", c.String("env-file"), err)
	}
	cfg := config.Load()
	if c.IsSet("api-url") {
		cfg.API.BaseURL = c.String("api-url")
	}
	if c.IsSet("timeout") {
		cfg.API.Timeout = c.Duration("timeout")
	}
	if c.IsSet("session-dir") {
		cfg.Session.Dir = c.String("session-dir")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}

	out, err := newPrinter(opts.Out, c.String("output"))
	if err != nil {
		return err
	}

	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: AppName,
		Version: opts.Version,
		File:    cfg.Log.File,
	})
	rec := metrics.NewRecorder()

	var store *session.Store
	tokens := gateway.TokenFunc(func() string {
		if store == nil {
			return ""
		}
		return store.Token()
	})
	api := opts.Clients(cfg, logger, rec, tokens)
	store = session.Open(session.NewFileStorage(cfg.Session.Dir), api, logger, session.WithClock(rt.clock))

	rt.cfg = cfg
	rt.logger = logger
	rt.metrics = rec
	rt.api = api
	rt.session = store
	rt.out = out
	return nil
}
