package session

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

// CookieName is the cookie the console API keeps the session record in.
const CookieName = "transfer_console_session"

const cookieMaxAgeSeconds = 60 * 60 * 8

// NewCookieStore builds the signed cookie store shared by every request.
func NewCookieStore(secret []byte, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cookieMaxAgeSeconds,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// CookieStorage is a Storage bound to a single HTTP exchange. The browser's
// cookie jar plays the role of the client-side key-value store.
type CookieStorage struct {
	store sessions.Store
	r     *http.Request
	w     http.ResponseWriter
}

// NewCookieStorage binds store to one request/response pair.
func NewCookieStorage(store sessions.Store, w http.ResponseWriter, r *http.Request) *CookieStorage {
	return &CookieStorage{store: store, r: r, w: w}
}

func (c *CookieStorage) session() (*sessions.Session, error) {
	sess, err := c.store.Get(c.r, CookieName)
	if sess == nil {
		return nil, err
	}
	if err != nil {
		// A cookie signed with another key decodes to a fresh session.
		return sess, fmt.Errorf("decode session cookie: %w", err)
	}
	return sess, nil
}

// Load returns the record for key from the request cookie.
func (c *CookieStorage) Load(key string) ([]byte, error) {
	sess, err := c.session()
	if err != nil {
		return nil, err
	}
	raw, ok := sess.Values[key].(string)
	if !ok || raw == "" {
		return nil, ErrNotFound
	}
	return []byte(raw), nil
}

// Save stores the record and writes the cookie on the response.
func (c *CookieStorage) Save(key string, data []byte) error {
	sess, err := c.session()
	if sess == nil {
		return err
	}
	sess.Values[key] = string(data)
	// Clear earlier in the same request leaves the cookie marked for deletion.
	if sess.Options != nil && sess.Options.MaxAge < 0 {
		sess.Options.MaxAge = cookieMaxAgeSeconds
	}
	return sess.Save(c.r, c.w)
}

// Clear drops the record and expires the cookie.
func (c *CookieStorage) Clear(key string) error {
	sess, err := c.session()
	if sess == nil {
		return err
	}
	delete(sess.Values, key)
	sess.Options.MaxAge = -1
	return sess.Save(c.r, c.w)
}
