package session

import (
	"errors"
)

// ErrMissingCredentials is wrapped by AuthError when username or password is empty.
var ErrMissingCredentials = errors.New("username and password are required")

// AuthError reports a rejected login. Err holds the cause, typically a
// gateway.APIError carrying the remote status.
type AuthError struct {
	Username string
	Err      error
}

func (e *AuthError) Error() string {
	return "invalid credentials"
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// AsAuthError attempts to unwrap an error into an AuthError.
func AsAuthError(err error) (*AuthError, bool) {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr, true
	}
	return nil, false
}
