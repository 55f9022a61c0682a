package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/transfer-console/internal/console/requestutil"
	"github.com/preston-bernstein/transfer-console/internal/domain/clubs"
	"github.com/preston-bernstein/transfer-console/internal/domain/players"
	"github.com/preston-bernstein/transfer-console/internal/views"
)

type playersResponse struct {
	Tab     views.Tab        `json:"tab"`
	Count   int              `json:"count"`
	Players []players.Player `json:"players"`
}

type clubsResponse struct {
	Count int          `json:"count"`
	Clubs []clubs.Club `json:"clubs"`
}

func (h *Handler) viewOptions(sc requestScope) []views.ControllerOption {
	return []views.ControllerOption{views.WithLogger(sc.logger), views.WithMetrics(h.metrics)}
}

// Nationalities lists every nationality.
func (h *Handler) Nationalities(w http.ResponseWriter, r *http.Request) {
	sc := h.scope(w, r)
	if err := views.RequireLogin(sc.session); err != nil {
		writeFailure(w, r, err, sc.logger)
		return
	}
	list, err := sc.api.ListNationalities(r.Context())
	if err != nil {
		writeFailure(w, r, err, sc.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": len(list), "nationalities": list}, h.logger)
}

// Lookups returns the nationality and club pickers in one response.
func (h *Handler) Lookups(w http.ResponseWriter, r *http.Request) {
	sc := h.scope(w, r)
	if err := views.RequireLogin(sc.session); err != nil {
		writeFailure(w, r, err, sc.logger)
		return
	}
	lookups, err := views.LoadLookups(r.Context(), sc.api)
	if err != nil {
		writeFailure(w, r, err, sc.logger)
		return
	}
	writeJSON(w, http.StatusOK, lookups, h.logger)
}

// Players searches players. Query: search, nationality, club, tab,
// min_overall, max_overall, page, page_size.
func (h *Handler) Players(w http.ResponseWriter, r *http.Request) {
	filters, err := playerFilters(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	sc := h.scope(w, r)
	view := views.NewPlayersController(sc.api, sc.session, h.viewOptions(sc)...)
	if err := view.Apply(r.Context(), filters); err != nil {
		writeFailure(w, r, err, sc.logger)
		return
	}
	found := view.Results()
	writeJSON(w, http.StatusOK, playersResponse{Tab: filters.Tab, Count: len(found), Players: found}, h.logger)
}

func playerFilters(r *http.Request) (views.PlayerFilters, error) {
	tab, err := views.ParseTab(r.URL.Query().Get("tab"))
	if err != nil {
		return views.PlayerFilters{}, err
	}
	f := views.PlayerFilters{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Tab:    tab,
	}
	ints := []struct {
		name string
		dst  *int
	}{
		{"nationality", &f.NationalityID},
		{"club", &f.ClubID},
		{"min_overall", &f.MinOverall},
		{"max_overall", &f.MaxOverall},
		{"page", &f.Page},
		{"page_size", &f.PageSize},
	}
	for _, q := range ints {
		if *q.dst, err = requestutil.IntQuery(r, q.name); err != nil {
			return views.PlayerFilters{}, err
		}
	}
	return f, nil
}

// PlayerByID returns a single player.
func (h *Handler) PlayerByID(w http.ResponseWriter, r *http.Request) {
	id, err := requestutil.PositiveID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid player id", h.logger)
		return
	}
	sc := h.scope(w, r)
	if err := views.RequireLogin(sc.session); err != nil {
		writeFailure(w, r, err, sc.logger)
		return
	}
	player, err := sc.api.GetPlayer(r.Context(), id)
	if err != nil {
		writeFailure(w, r, err, sc.logger)
		return
	}
	writeJSON(w, http.StatusOK, player, h.logger)
}

// Clubs lists clubs. Query: search, nationality.
func (h *Handler) Clubs(w http.ResponseWriter, r *http.Request) {
	nationality, err := requestutil.IntQuery(r, "nationality")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	sc := h.scope(w, r)
	view := views.NewClubsController(sc.api, sc.session, h.viewOptions(sc)...)
	filters := views.ClubFilters{Search: r.URL.Query().Get("search"), NationalityID: nationality}
	if err := view.Apply(r.Context(), filters); err != nil {
		writeFailure(w, r, err, sc.logger)
		return
	}
	found := view.Results()
	writeJSON(w, http.StatusOK, clubsResponse{Count: len(found), Clubs: found}, h.logger)
}

// ClubByID returns a club with its squad.
func (h *Handler) ClubByID(w http.ResponseWriter, r *http.Request) {
	id, err := requestutil.PositiveID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid club id", h.logger)
		return
	}
	sc := h.scope(w, r)
	if err := views.RequireLogin(sc.session); err != nil {
		writeFailure(w, r, err, sc.logger)
		return
	}
	squad, err := sc.api.GetClub(r.Context(), id)
	if err != nil {
		writeFailure(w, r, err, sc.logger)
		return
	}
	writeJSON(w, http.StatusOK, squad, h.logger)
}
