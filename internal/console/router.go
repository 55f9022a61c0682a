package console

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/preston-bernstein/transfer-console/internal/console/handlers"
	"github.com/preston-bernstein/transfer-console/internal/console/middleware"
	"github.com/preston-bernstein/transfer-console/internal/metrics"
)

// RouterConfig carries what the router needs besides the handler.
type RouterConfig struct {
	Logger         *slog.Logger
	Metrics        *metrics.Recorder
	AllowedOrigins []string
}

// NewRouter registers the console routes.
func NewRouter(h *handlers.Handler, cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Middleware(cfg.Logger, cfg.Metrics))
	r.NotFoundHandler = http.HandlerFunc(h.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(h.MethodNotAllowed)

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/ready", h.Ready).Methods(http.MethodGet)

	r.HandleFunc("/session", h.CurrentSession).Methods(http.MethodGet)
	r.HandleFunc("/session/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/session/logout", h.Logout).Methods(http.MethodPost)

	r.HandleFunc("/lookups", h.Lookups).Methods(http.MethodGet)
	r.HandleFunc("/nationalities", h.Nationalities).Methods(http.MethodGet)
	r.HandleFunc("/players", h.Players).Methods(http.MethodGet)
	r.HandleFunc("/players/{id}", h.PlayerByID).Methods(http.MethodGet)
	r.HandleFunc("/clubs", h.Clubs).Methods(http.MethodGet)
	r.HandleFunc("/clubs/{id}", h.ClubByID).Methods(http.MethodGet)
	r.HandleFunc("/market", h.Market).Methods(http.MethodGet)
	r.HandleFunc("/transfers", h.Transfer).Methods(http.MethodPost)

	if len(cfg.AllowedOrigins) == 0 {
		return r
	}
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Content-Type", middleware.HeaderRequestID},
		ExposedHeaders:   []string{middleware.HeaderRequestID},
		AllowCredentials: true,
	}).Handler(r)
}
