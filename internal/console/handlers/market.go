package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/preston-bernstein/transfer-console/internal/console/requestutil"
	"github.com/preston-bernstein/transfer-console/internal/domain/contracts"
	"github.com/preston-bernstein/transfer-console/internal/domain/market"
	"github.com/preston-bernstein/transfer-console/internal/timeutil"
	"github.com/preston-bernstein/transfer-console/internal/transfer"
	"github.com/preston-bernstein/transfer-console/internal/views"
)

const maxBodyBytes = 1 << 16

type marketResponse struct {
	Count    int              `json:"count"`
	Listings []market.Listing `json:"listings"`
}

// Market lists the transfer market. Bounds are in millions: min_release,
// max_release, min_value, max_value.
func (h *Handler) Market(w http.ResponseWriter, r *http.Request) {
	var bounds [4]int64
	for i, name := range []string{"min_release", "max_release", "min_value", "max_value"} {
		v, err := requestutil.Int64Query(r, name)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
			return
		}
		bounds[i] = v
	}
	filters, err := views.MarketFiltersFromMillions(bounds[0], bounds[1], bounds[2], bounds[3])
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	sc := h.scope(w, r)
	view := views.NewMarketController(sc.api, sc.session, h.viewOptions(sc)...)
	if err := view.Apply(r.Context(), filters); err != nil {
		writeFailure(w, r, err, sc.logger)
		return
	}
	found := view.Results()
	writeJSON(w, http.StatusOK, marketResponse{Count: len(found), Listings: found}, h.logger)
}

type transferBody struct {
	PlayerID              int    `json:"player_id"`
	ClubID                int    `json:"club_id"`
	ReleaseClauseMillions *int64 `json:"release_clause_millions" validate:"omitempty,gte=0,lte=9223372036854"`
	ContractStart         string `json:"contract_start" validate:"omitempty,datetime=2006-01-02"`
	ContractEnd           string `json:"contract_end" validate:"omitempty,datetime=2006-01-02"`
}

type transferResponse struct {
	Message  string              `json:"message,omitempty"`
	Contract *contracts.Contract `json:"contract,omitempty"`
}

// Transfer moves a player to another club. Omitted terms keep the defaults
// offered on selection: the current release clause and a contract from
// today for three years.
func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	var body transferBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	body.ContractStart = strings.TrimSpace(body.ContractStart)
	body.ContractEnd = strings.TrimSpace(body.ContractEnd)
	if err := validateBody(body); err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}
	start, end, err := contractDates(body)
	if err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}

	sc := h.scope(w, r)
	if err := views.RequireAdmin(sc.session); err != nil {
		writeFailure(w, r, err, sc.logger)
		return
	}
	if body.PlayerID <= 0 {
		writeFailure(w, r, &transfer.ValidationError{Fields: []transfer.FieldError{{Field: transfer.FieldPlayer, Message: "must be selected"}}}, sc.logger)
		return
	}
	player, err := sc.api.GetPlayer(r.Context(), body.PlayerID)
	if err != nil {
		writeFailure(w, r, err, sc.logger)
		return
	}

	wf := transfer.New(sc.api, sc.session, transfer.WithClock(h.clock), transfer.WithLogger(sc.logger))
	if err := wf.SelectPlayer(player); err != nil {
		writeFailure(w, r, err, sc.logger)
		return
	}
	edits := []func() error{func() error { return wf.SetDestination(body.ClubID) }}
	if body.ReleaseClauseMillions != nil {
		edits = append(edits, func() error { return wf.SetReleaseClauseMillions(*body.ReleaseClauseMillions) })
	}
	if !start.IsZero() {
		edits = append(edits, func() error { return wf.SetStart(start) })
	}
	if !end.IsZero() {
		edits = append(edits, func() error { return wf.SetEnd(end) })
	}
	for _, edit := range edits {
		if err := edit(); err != nil {
			writeFailure(w, r, err, sc.logger)
			return
		}
	}

	res, err := wf.Submit(r.Context())
	if err != nil {
		writeFailure(w, r, err, sc.logger)
		return
	}
	writeJSON(w, http.StatusOK, transferResponse{Message: res.Message, Contract: res.Contract}, h.logger)
}

func contractDates(body transferBody) (start, end timeutil.Date, err error) {
	var fields []transfer.FieldError
	if raw := strings.TrimSpace(body.ContractStart); raw != "" {
		if start, err = timeutil.ParseDay(raw); err != nil {
			fields = append(fields, transfer.FieldError{Field: transfer.FieldStart, Message: "must be a date (YYYY-MM-DD)"})
		}
	}
	if raw := strings.TrimSpace(body.ContractEnd); raw != "" {
		if end, err = timeutil.ParseDay(raw); err != nil {
			fields = append(fields, transfer.FieldError{Field: transfer.FieldEnd, Message: "must be a date (YYYY-MM-DD)"})
		}
	}
	if len(fields) > 0 {
		return timeutil.Date{}, timeutil.Date{}, &transfer.ValidationError{Fields: fields}
	}
	return start, end, nil
}
