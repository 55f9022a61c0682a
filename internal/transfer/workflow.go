package transfer

import (
	"context"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"

	"github.com/preston-bernstein/transfer-console/internal/domain/money"
	"github.com/preston-bernstein/transfer-console/internal/domain/players"
	"github.com/preston-bernstein/transfer-console/internal/gateway"
	"github.com/preston-bernstein/transfer-console/internal/logging"
	"github.com/preston-bernstein/transfer-console/internal/timeutil"
	"github.com/preston-bernstein/transfer-console/internal/views"
)

// DefaultContractYears is the default contract length offered on selection.
const DefaultContractYears = 3

// State is the workflow position.
type State int

const (
	StateIdle State = iota
	StatePlayerSelected
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StatePlayerSelected:
		return "player_selected"
	case StateSubmitting:
		return "submitting"
	default:
		return "idle"
	}
}

// Refresher is a list that must be refetched after a successful transfer.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Draft is the transfer being prepared.
type Draft struct {
	Player        players.Player `json:"player"`
	DestinationID int            `json:"destinationClubId"`
	ReleaseClause money.Amount   `json:"releaseClause"`
	Start         timeutil.Date  `json:"contractStart"`
	End           timeutil.Date  `json:"contractEnd"`
}

// Workflow drives one transfer at a time: select a player, edit the terms,
// submit. It is safe for concurrent use.
type Workflow struct {
	api        gateway.MarketAPI
	session    views.Session
	clock      clockwork.Clock
	logger     *slog.Logger
	validate   *validator.Validate
	refreshers []Refresher

	mu          sync.Mutex
	state       State
	draft       Draft
	destination int
}

// Option customizes a Workflow.
type Option func(*Workflow)

// WithClock sets the clock used for default contract dates.
func WithClock(clock clockwork.Clock) Option {
	return func(w *Workflow) {
		if clock != nil {
			w.clock = clock
		}
	}
}

// WithLogger sets the workflow logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workflow) { w.logger = logger }
}

// WithRefreshers registers the lists refreshed after a successful submit.
func WithRefreshers(r ...Refresher) Option {
	return func(w *Workflow) { w.refreshers = append(w.refreshers, r...) }
}

// New builds an idle workflow.
func New(api gateway.MarketAPI, session views.Session, opts ...Option) *Workflow {
	w := &Workflow{
		api:      api,
		session:  session,
		clock:    clockwork.NewRealClock(),
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// State returns the current state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Draft returns the transfer being prepared, if a player is selected.
func (w *Workflow) Draft() (Draft, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateIdle {
		return Draft{}, false
	}
	return w.draft, true
}

// SelectPlayer starts a transfer for p. The release clause is copied from
// the player's contract and the contract runs from today for three years.
// A destination chosen earlier is kept unless it is the player's own club.
func (w *Workflow) SelectPlayer(p players.Player) error {
	if err := views.RequireAdmin(w.session); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateSubmitting {
		return ErrSubmitInProgress
	}

	today := timeutil.DateOf(w.clock.Now())
	draft := Draft{
		Player: p,
		Start:  today,
		End:    today.AddYears(DefaultContractYears),
	}
	if p.Contract != nil {
		draft.ReleaseClause = p.Contract.ReleaseClause
	}
	if w.destination != 0 && w.destination != p.CurrentClubID() {
		draft.DestinationID = w.destination
	}
	w.destination = draft.DestinationID
	w.draft = draft
	w.state = StatePlayerSelected
	return nil
}

// SetDestination chooses the club the player moves to.
func (w *Workflow) SetDestination(clubID int) error {
	return w.edit(func(d *Draft) {
		d.DestinationID = clubID
		w.destination = clubID
	})
}

// SetReleaseClause sets the release clause in base units.
func (w *Workflow) SetReleaseClause(a money.Amount) error {
	return w.edit(func(d *Draft) { d.ReleaseClause = a })
}

// SetReleaseClauseMillions sets the release clause from a value in millions.
// Values that do not fit an Amount are a ValidationError on release_clause.
func (w *Workflow) SetReleaseClauseMillions(m int64) error {
	a, err := money.ParseMillions(m)
	if err != nil {
		return &ValidationError{Fields: []FieldError{{Field: FieldReleaseClause, Message: "is out of range"}}}
	}
	return w.SetReleaseClause(a)
}

// SetStart sets the contract start date.
func (w *Workflow) SetStart(d timeutil.Date) error {
	return w.edit(func(draft *Draft) { draft.Start = d })
}

// SetEnd sets the contract end date.
func (w *Workflow) SetEnd(d timeutil.Date) error {
	return w.edit(func(draft *Draft) { draft.End = d })
}

func (w *Workflow) edit(fn func(*Draft)) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.state {
	case StateSubmitting:
		return ErrSubmitInProgress
	case StatePlayerSelected:
		fn(&w.draft)
		return nil
	default:
		return ErrNoSelection
	}
}

// Cancel drops the selection and returns to idle.
func (w *Workflow) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateSubmitting {
		return
	}
	w.state = StateIdle
	w.draft = Draft{}
}

// Submit validates the draft and sends it. Validation failures return a
// *ValidationError without calling the service. A service failure returns
// the workflow to PlayerSelected with the error unchanged so the operator
// can correct and retry. On success the workflow goes idle and the
// registered lists are refreshed.
func (w *Workflow) Submit(ctx context.Context) (gateway.TransferResult, error) {
	w.mu.Lock()
	if w.state == StateSubmitting {
		w.mu.Unlock()
		return gateway.TransferResult{}, ErrSubmitInProgress
	}
	if w.state != StatePlayerSelected {
		w.mu.Unlock()
		return gateway.TransferResult{}, &ValidationError{Fields: []FieldError{{Field: FieldPlayer, Message: "must be selected"}}}
	}
	draft := w.draft
	if err := validateSubmission(w.validate, toSubmission(draft)); err != nil {
		w.mu.Unlock()
		return gateway.TransferResult{}, err
	}
	w.state = StateSubmitting
	w.mu.Unlock()

	logger := logging.FromContext(ctx, w.logger)
	req := gateway.TransferRequest{
		PlayerID:      draft.Player.ID,
		NewClubID:     draft.DestinationID,
		ReleaseClause: draft.ReleaseClause,
		ContractStart: draft.Start,
		ContractEnd:   draft.End,
	}
	res, err := w.api.TransferPlayer(ctx, req)

	w.mu.Lock()
	if err != nil {
		w.state = StatePlayerSelected
		w.mu.Unlock()
		logging.Warn(logger, "transfer failed", logging.FieldPlayerID, req.PlayerID, logging.FieldClubID, req.NewClubID, "error", err)
		return gateway.TransferResult{}, err
	}
	w.state = StateIdle
	w.draft = Draft{}
	w.destination = 0
	w.mu.Unlock()

	logging.Info(logger, "transfer completed", logging.FieldPlayerID, req.PlayerID, logging.FieldClubID, req.NewClubID)
	for _, r := range w.refreshers {
		if rerr := r.Refresh(ctx); rerr != nil {
			logging.Warn(logger, "refresh after transfer failed", "error", rerr)
		}
	}
	return res, nil
}

func toSubmission(d Draft) submission {
	s := submission{
		PlayerID:      d.Player.ID,
		CurrentClubID: d.Player.CurrentClubID(),
		DestinationID: d.DestinationID,
		ReleaseClause: int64(d.ReleaseClause),
	}
	if !d.Start.IsZero() {
		s.Start = d.Start.Time()
	}
	if !d.End.IsZero() {
		s.End = d.End.Time()
	}
	return s
}
