package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/preston-bernstein/transfer-console/internal/domain/users"
)

// tokenClaims reads the claims of a bearer token without verifying its
// signature. The result only feeds display decisions; the service verifies
// the token on every privileged call.
type tokenClaims struct {
	Username string
	Role     users.Role
	Expires  time.Time
}

func parseClaims(token string) (tokenClaims, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return tokenClaims{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return tokenClaims{}, false
	}

	out := tokenClaims{}
	if v, ok := claims["username"].(string); ok {
		out.Username = v
	} else if sub, err := claims.GetSubject(); err == nil {
		out.Username = sub
	}
	if v, ok := claims["role"].(string); ok {
		out.Role = normalizeRole(users.Role(v))
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.Expires = exp.Time
	}
	return out, true
}

// expired reports whether the claims carry an expiry at or before now.
func (c tokenClaims) expired(now time.Time) bool {
	return !c.Expires.IsZero() && !now.Before(c.Expires)
}

func normalizeRole(r users.Role) users.Role {
	return users.Role(strings.ToLower(strings.TrimSpace(string(r))))
}

// resolveRole fills in a role the login response left out: the token's role
// claim first, then the legacy rule that the "admin" username is an admin.
// The display name never grants a role.
func resolveRole(u users.User, claims tokenClaims) users.Role {
	if r := normalizeRole(u.Role); r != "" {
		return r
	}
	if claims.Role != "" {
		return claims.Role
	}
	if u.Username == users.AdminUsername {
		return users.RoleAdmin
	}
	return users.RoleUser
}
