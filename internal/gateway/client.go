package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/transfer-console/internal/domain/clubs"
	"github.com/preston-bernstein/transfer-console/internal/domain/market"
	"github.com/preston-bernstein/transfer-console/internal/domain/nationalities"
	"github.com/preston-bernstein/transfer-console/internal/domain/players"
	"github.com/preston-bernstein/transfer-console/internal/logging"
	"github.com/preston-bernstein/transfer-console/internal/metrics"
)

// TokenSource supplies the bearer token attached to outgoing requests.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

// Token returns f().
func (f TokenFunc) Token() string { return f() }

// Config controls how the client reaches the remote service.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	// Timeout bounds each call when HTTPClient is nil. Zero disables it.
	Timeout   time.Duration
	RateLimit float64
	RateBurst int
	Tokens    TokenSource
	Logger    *slog.Logger
	Metrics   *metrics.Recorder
}

// Client talks to the player management service. Every call goes to the
// network; nothing is cached or retried.
type Client struct {
	baseURL    string
	httpClient httpDoer
	tokens     TokenSource
	logger     *slog.Logger
	metrics    *metrics.Recorder
	now        func() time.Time
}

var _ API = (*Client)(nil)

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: withPacing(resolveHTTPClient(cfg.HTTPClient, cfg.Timeout), cfg.RateLimit, cfg.RateBurst),
		tokens:     cfg.Tokens,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		now:        time.Now,
	}
}

// WithTokenSource returns a copy of the client that authenticates with ts.
// The copy shares the transport, so pacing applies across both.
func (c *Client) WithTokenSource(ts TokenSource) *Client {
	cp := *c
	cp.tokens = ts
	return &cp
}

// ListPlayers returns every outfield player and goalkeeper.
func (c *Client) ListPlayers(ctx context.Context) ([]players.Player, error) {
	var payload []playerResponse
	if err := c.call(ctx, OpListPlayers, http.MethodGet, pathAllPlayers, nil, &payload); err != nil {
		return nil, err
	}
	issues := &dateIssues{}
	out := mapPlayers(payload, "", issues)
	c.logDateIssues(ctx, OpListPlayers, issues)
	return out, nil
}

// ListClubs returns every club.
func (c *Client) ListClubs(ctx context.Context) ([]clubs.Club, error) {
	var payload []clubResponse
	if err := c.call(ctx, OpListClubs, http.MethodGet, pathAllClubs, nil, &payload); err != nil {
		return nil, err
	}
	return mapClubs(payload), nil
}

// ListNationalities returns every nationality.
func (c *Client) ListNationalities(ctx context.Context) ([]nationalities.Nationality, error) {
	var payload []nationalityResponse
	if err := c.call(ctx, OpListNationalities, http.MethodGet, pathAllNationalities, nil, &payload); err != nil {
		return nil, err
	}
	return mapNationalities(payload), nil
}

// GetClub returns a club with its roster.
func (c *Client) GetClub(ctx context.Context, id int) (players.Squad, error) {
	var payload clubDetailResponse
	if err := c.call(ctx, OpGetClub, http.MethodGet, fmt.Sprintf(pathClub, id), nil, &payload); err != nil {
		return players.Squad{}, err
	}
	issues := &dateIssues{}
	out := mapSquad(payload, issues)
	c.logDateIssues(ctx, OpGetClub, issues)
	return out, nil
}

// GetPlayer returns one player with contract details when the service has them.
func (c *Client) GetPlayer(ctx context.Context, id int) (players.Player, error) {
	var payload playerResponse
	if err := c.call(ctx, OpGetPlayer, http.MethodGet, fmt.Sprintf(pathPlayer, id), nil, &payload); err != nil {
		return players.Player{}, err
	}
	issues := &dateIssues{}
	out := mapPlayer(payload, "", issues)
	c.logDateIssues(ctx, OpGetPlayer, issues)
	return out, nil
}

// SearchOutfield searches outfield players.
func (c *Client) SearchOutfield(ctx context.Context, q SearchQuery) ([]players.Player, error) {
	var payload []playerResponse
	if err := c.call(ctx, OpSearchOutfield, http.MethodPost, pathOutfieldSearch, q.body(true, false), &payload); err != nil {
		return nil, err
	}
	issues := &dateIssues{}
	out := mapPlayers(payload, players.PositionOutfield, issues)
	c.logDateIssues(ctx, OpSearchOutfield, issues)
	return out, nil
}

// SearchGoalkeepers searches goalkeepers.
func (c *Client) SearchGoalkeepers(ctx context.Context, q SearchQuery) ([]players.Player, error) {
	var payload []playerResponse
	if err := c.call(ctx, OpSearchGoalkeepers, http.MethodPost, pathGoalkeeperSearch, q.body(false, true), &payload); err != nil {
		return nil, err
	}
	issues := &dateIssues{}
	out := mapPlayers(payload, players.PositionGoalkeeper, issues)
	c.logDateIssues(ctx, OpSearchGoalkeepers, issues)
	return out, nil
}

// TransferMarket returns the players currently listed for transfer.
func (c *Client) TransferMarket(ctx context.Context) ([]market.Listing, error) {
	var payload []listingResponse
	if err := c.call(ctx, OpTransferMarket, http.MethodGet, pathTransferMarket, nil, &payload); err != nil {
		return nil, err
	}
	issues := &dateIssues{}
	out := mapListings(payload, issues)
	c.logDateIssues(ctx, OpTransferMarket, issues)
	return out, nil
}

// TransferPlayer submits a transfer. The service authorizes it; a non-admin
// token comes back as an APIError with status 403.
func (c *Client) TransferPlayer(ctx context.Context, req TransferRequest) (TransferResult, error) {
	var payload transferResponse
	if err := c.call(ctx, OpTransferPlayer, http.MethodPost, pathTransferPlayer, req.body(), &payload); err != nil {
		return TransferResult{}, err
	}
	result := TransferResult{Message: payload.Message}
	if payload.Contract != nil {
		issues := &dateIssues{}
		contract := mapContract(*payload.Contract, issues)
		c.logDateIssues(ctx, OpTransferPlayer, issues)
		result.Contract = &contract
	}
	return result, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var payload loginResponse
	body := loginRequest{Username: username, Password: password}
	if err := c.call(ctx, OpLogin, http.MethodPost, pathLogin, body, &payload); err != nil {
		return LoginResult{}, err
	}
	token := payload.Token
	if token == "" {
		token = payload.AccessToken
	}
	return LoginResult{Token: token, User: mapUser(payload.User)}, nil
}

// call performs one request and records it in logs and metrics.
func (c *Client) call(ctx context.Context, op, method, path string, body, out any) error {
	start := c.now()
	status, err := c.roundTrip(ctx, op, method, path, body, out)
	elapsed := c.now().Sub(start)

	c.metrics.RecordAPICall(op, status, elapsed, err)
	logger := logging.FromContext(ctx, c.logger)
	args := []any{
		logging.FieldOperation, op,
		logging.FieldMethod, method,
		logging.FieldPath, path,
		logging.FieldStatusCode, status,
		logging.FieldDurationMS, elapsed.Milliseconds(),
	}
	if err != nil {
		logging.Warn(logger, "api call failed", append(args, "error", err)...)
		return err
	}
	logging.Debug(logger, "api call", args...)
	return nil
}

func (c *Client) roundTrip(ctx context.Context, op, method, path string, body, out any) (int, error) {
	req, err := c.buildRequest(ctx, op, method, path, body)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return resp.StatusCode, &APIError{Op: op, Status: resp.StatusCode, Message: errorMessage(raw)}
	}

	if out == nil {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		// An empty body is a valid answer for writes.
		if errors.Is(err, io.EOF) && method != http.MethodGet {
			return resp.StatusCode, nil
		}
		return resp.StatusCode, &NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return resp.StatusCode, nil
}

func (c *Client) buildRequest(ctx context.Context, op, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, &NetworkError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

// errorMessage pulls a readable message out of an error body. The service
// answers {"detail": "..."}; anything else is returned as trimmed text.
func errorMessage(raw []byte) string {
	var payload errorResponse
	if err := json.Unmarshal(raw, &payload); err == nil {
		if detail, ok := payload.Detail.(string); ok && detail != "" {
			return detail
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(raw))
}

func (c *Client) logDateIssues(ctx context.Context, op string, issues *dateIssues) {
	if issues == nil || issues.count == 0 {
		return
	}
	logging.Warn(logging.FromContext(ctx, c.logger), "unparsable dates in response",
		logging.FieldOperation, op,
		logging.FieldCount, issues.count,
		"first", issues.first,
	)
}
