package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/jonboulle/clockwork"

	"github.com/preston-bernstein/transfer-console/internal/gateway"
	"github.com/preston-bernstein/transfer-console/internal/metrics"
	"github.com/preston-bernstein/transfer-console/internal/session"
	"github.com/preston-bernstein/transfer-console/internal/watcher"
)

// ClientFactory returns an API client that authenticates with tokens.
type ClientFactory func(tokens gateway.TokenSource) gateway.API

// Deps are the collaborators a Handler needs.
type Deps struct {
	Clients  ClientFactory
	Cookies  sessions.Store
	Logger   *slog.Logger
	Metrics  *metrics.Recorder
	Clock    clockwork.Clock
	StatusFn func() watcher.Status
}

// Handler serves the console API. Every request gets its own session,
// restored from the cookie.
type Handler struct {
	clients  ClientFactory
	cookies  sessions.Store
	logger   *slog.Logger
	metrics  *metrics.Recorder
	clock    clockwork.Clock
	statusFn func() watcher.Status
}

// NewHandler constructs a Handler with defaults.
func NewHandler(deps Deps) *Handler {
	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Handler{
		clients:  deps.Clients,
		cookies:  deps.Cookies,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
		clock:    clock,
		statusFn: deps.StatusFn,
	}
}

// requestScope is the per-request session and the client bound to its token.
type requestScope struct {
	session *session.Store
	api     gateway.API
	logger  *slog.Logger
}

func (h *Handler) scope(w http.ResponseWriter, r *http.Request) requestScope {
	logger := loggerFromContext(r, h.logger)
	var store *session.Store
	api := h.clients(gateway.TokenFunc(func() string {
		if store == nil {
			return ""
		}
		return store.Token()
	}))
	storage := session.NewCookieStorage(h.cookies, w, r)
	store = session.Open(storage, api, logger, session.WithClock(h.clock))
	return requestScope{session: store, api: api, logger: logger}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the transfer service has answered recently.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// NotFound is the JSON 404 for unmatched routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed is the JSON 405 for known paths.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
}
