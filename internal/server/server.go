package server

import (
	"context"
	"crypto/rand"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/transfer-console/internal/config"
	"github.com/preston-bernstein/transfer-console/internal/console"
	"github.com/preston-bernstein/transfer-console/internal/console/handlers"
	"github.com/preston-bernstein/transfer-console/internal/gateway"
	"github.com/preston-bernstein/transfer-console/internal/logging"
	"github.com/preston-bernstein/transfer-console/internal/metrics"
	"github.com/preston-bernstein/transfer-console/internal/session"
	"github.com/preston-bernstein/transfer-console/internal/watcher"
)

var metricsSetup = metrics.Setup

// cookieSecretBytes is the size of the ephemeral key used when no secret is configured.
const cookieSecretBytes = 32

// Server runs the console API, its metrics listener and the upstream watcher.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	httpServer    httpServer
	metricsServer httpServer
	watcher       Watcher
	metricsStop   func(context.Context) error
}

// New constructs a server talking to the configured transfer service.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	client := gateway.NewClient(gateway.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		RateLimit: cfg.API.RateLimit,
		RateBurst: cfg.API.RateBurst,
		Logger:    logger,
		Metrics:   recorder,
	})
	clients := func(tokens gateway.TokenSource) gateway.API {
		return client.WithTokenSource(tokens)
	}
	w := watcher.New("upstream", upstreamProbe{api: client}, logger, recorder, cfg.Console.MarketInterval)
	httpSrv := buildHTTPServer(cfg, clients, logger, recorder, w)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		watcher:       w,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, w Watcher) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		watcher:    w,
	}
}

func buildHTTPServer(cfg config.Config, clients handlers.ClientFactory, logger *slog.Logger, recorder *metrics.Recorder, w Watcher) httpServer {
	var statusFn func() watcher.Status
	if w != nil {
		statusFn = w.Status
	}

	handler := handlers.NewHandler(handlers.Deps{
		Clients:  clients,
		Cookies:  session.NewCookieStore(cookieSecret(cfg.Session.CookieSecret, logger), cfg.Session.SecureCookies),
		Logger:   logger,
		Metrics:  recorder,
		StatusFn: statusFn,
	})
	router := console.NewRouter(handler, console.RouterConfig{
		Logger:         logger,
		Metrics:        recorder,
		AllowedOrigins: cfg.Console.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Console.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

func cookieSecret(configured string, logger *slog.Logger) []byte {
	if configured != "" {
		return []byte(configured)
	}
	key := make([]byte, cookieSecretBytes)
	if _, err := rand.Read(key); err != nil {
		panic("cookie secret: " + err.Error())
	}
	logging.Warn(logger, "no session cookie secret configured; sessions will not survive a restart")
	return key
}

// Run starts the watcher and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.watcher.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.watcher.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop watcher", "error", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Ready reports the upstream watcher status.
func (s *Server) Ready() watcher.Status {
	return s.watcher.Status()
}
