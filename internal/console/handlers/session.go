package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/preston-bernstein/transfer-console/internal/domain/users"
	"github.com/preston-bernstein/transfer-console/internal/logging"
)

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User    users.User `json:"user"`
	IsAdmin bool       `json:"isAdmin"`
}

// Login exchanges credentials for a session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	sc := h.scope(w, r)
	user, err := sc.session.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		writeFailure(w, r, err, sc.logger)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{User: user, IsAdmin: user.IsAdmin()}, h.logger)
}

// Logout clears the session cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sc := h.scope(w, r)
	if err := sc.session.Logout(); err != nil {
		logging.Warn(sc.logger, "failed to clear session", "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"}, h.logger)
}

// CurrentSession returns the logged-in user.
func (h *Handler) CurrentSession(w http.ResponseWriter, r *http.Request) {
	sc := h.scope(w, r)
	user, ok := sc.session.CurrentUser()
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "not logged in", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{User: user, IsAdmin: sc.session.IsAdmin()}, h.logger)
}
