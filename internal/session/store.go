package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/preston-bernstein/transfer-console/internal/domain/users"
	"github.com/preston-bernstein/transfer-console/internal/gateway"
	"github.com/preston-bernstein/transfer-console/internal/logging"
)

// RecordKey is the storage key the session record lives under.
const RecordKey = "user"

type record struct {
	User  users.User `json:"user"`
	Token string     `json:"token,omitempty"`
}

// Store holds the logged-in user for one client. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	storage Storage
	auth    gateway.Authenticator
	logger  *slog.Logger
	clock   clockwork.Clock

	user  *users.User
	token string
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the clock used to check token expiry.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// Open reads the persisted record once and returns a ready store. A corrupt
// or expired record is logged and cleared; the store then starts logged out.
func Open(storage Storage, auth gateway.Authenticator, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		auth:    auth,
		logger:  logger,
		clock:   clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.restore()
	return s
}

func (s *Store) restore() {
	if s.storage == nil {
		return
	}
	data, err := s.storage.Load(RecordKey)
	if errors.Is(err, ErrNotFound) {
		return
	}
	if err != nil {
		logging.Warn(s.logger, "discarding unreadable session", "error", err)
		s.discard()
		return
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil || rec.User.Username == "" {
		if err == nil {
			err = errors.New("record has no username")
		}
		logging.Warn(s.logger, "discarding corrupt session record", "error", err)
		s.discard()
		return
	}
	if claims, ok := parseClaims(rec.Token); ok && claims.expired(s.clock.Now()) {
		logging.Info(s.logger, "session token expired", logging.FieldUsername, rec.User.Username)
		s.discard()
		return
	}

	s.user = &rec.User
	s.token = rec.Token
}

func (s *Store) discard() {
	if err := s.storage.Clear(RecordKey); err != nil {
		logging.Warn(s.logger, "failed to clear session record", "error", err)
	}
}

// Login authenticates against the remote service and persists the result.
// A rejection from the service is reported as *AuthError; transport failures
// are returned as they are.
func (s *Store) Login(ctx context.Context, username, password string) (users.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return users.User{}, &AuthError{Username: username, Err: ErrMissingCredentials}
	}
	if s.auth == nil {
		return users.User{}, fmt.Errorf("session: no authenticator configured")
	}

	res, err := s.auth.Login(ctx, username, password)
	if err != nil {
		if _, ok := gateway.AsAPIError(err); ok {
			logging.Info(logging.FromContext(ctx, s.logger), "login rejected", logging.FieldUsername, username)
			return users.User{}, &AuthError{Username: username, Err: err}
		}
		return users.User{}, err
	}

	user := users.User{Username: username, Name: username}
	if res.User != nil {
		user = *res.User
		if user.Username == "" {
			user.Username = username
		}
		if user.Name == "" {
			user.Name = user.Username
		}
	}
	claims, _ := parseClaims(res.Token)
	user.Role = resolveRole(user, claims)

	rec := record{User: user, Token: res.Token}
	if s.storage != nil {
		data, err := json.Marshal(rec)
		if err != nil {
			return users.User{}, err
		}
		if err := s.storage.Save(RecordKey, data); err != nil {
			return users.User{}, fmt.Errorf("persist session: %w", err)
		}
	}

	s.mu.Lock()
	s.user = &rec.User
	s.token = rec.Token
	s.mu.Unlock()

	logging.Info(logging.FromContext(ctx, s.logger), "logged in", logging.FieldUsername, user.Username, "role", string(user.Role))
	return user, nil
}

// Logout erases the persisted record. The in-memory session is dropped even
// when clearing storage fails.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if s.storage == nil {
		return nil
	}
	return s.storage.Clear(RecordKey)
}

// CurrentUser returns the logged-in user, if any.
func (s *Store) CurrentUser() (users.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return users.User{}, false
	}
	return *s.user, true
}

// IsAdmin reports whether a user is present and its role is admin. This only
// decides what the client offers; the service authorizes privileged calls.
func (s *Store) IsAdmin() bool {
	u, ok := s.CurrentUser()
	return ok && u.IsAdmin()
}

// Token returns the bearer token from the last login, or "".
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
