package views

import (
	"errors"

	"github.com/preston-bernstein/transfer-console/internal/domain/users"
)

var (
	// ErrLoginRequired is returned by views that need a logged-in user.
	ErrLoginRequired = errors.New("login required")
	// ErrAdminRequired is returned by admin-only views. It reflects the
	// client-side role hint; the service still authorizes every call.
	ErrAdminRequired = errors.New("admin privileges required")
)

// Session is the read side of the session store that views depend on.
type Session interface {
	CurrentUser() (users.User, bool)
	IsAdmin() bool
}

// RequireLogin fails with ErrLoginRequired when no user is logged in.
func RequireLogin(s Session) error {
	if s == nil {
		return ErrLoginRequired
	}
	if _, ok := s.CurrentUser(); !ok {
		return ErrLoginRequired
	}
	return nil
}

// RequireAdmin fails with ErrLoginRequired or ErrAdminRequired.
func RequireAdmin(s Session) error {
	if err := RequireLogin(s); err != nil {
		return err
	}
	if !s.IsAdmin() {
		return ErrAdminRequired
	}
	return nil
}
