package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// CookieName is the cookie carrying the signed session token.
const CookieName = "session"

// Manager binds server-side sessions to requests through a signed cookie.
// The cookie's JWT subject is the session token; it carries no user data.
type Manager struct {
	store  Store
	key    []byte
	ttl    time.Duration
	secure bool
}

// NewManager creates a Manager signing cookies with key.
func NewManager(store Store, key []byte, ttl time.Duration, secure bool) *Manager {
	return &Manager{store: store, key: key, ttl: ttl, secure: secure}
}

// Begin starts a session for userID and sets the cookie, replacing any
// session the request already carried.
func (m *Manager) Begin(c echo.Context, userID int) error {
	ctx := c.Request().Context()

	if old, err := m.token(c); err == nil {
		if err := m.store.Delete(ctx, old); err != nil {
			return err
		}
	}

	token, err := m.store.Create(ctx, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	expiresAt := now.Add(m.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   token,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
	if err != nil {
		return err
	}

	c.SetCookie(m.cookie(signed, expiresAt, 0))
	return nil
}

// Resolve returns the user id of the request's session, or ErrNoSession.
func (m *Manager) Resolve(c echo.Context) (int, error) {
	token, err := m.token(c)
	if err != nil {
		return 0, err
	}
	return m.store.Lookup(c.Request().Context(), token)
}

// End deletes the request's session and clears the cookie.
func (m *Manager) End(c echo.Context) error {
	token, err := m.token(c)
	if err != nil {
		return err
	}
	if err := m.store.Delete(c.Request().Context(), token); err != nil {
		return err
	}
	c.SetCookie(m.cookie("", time.Unix(0, 0), -1))
	return nil
}

func (m *Manager) token(c echo.Context) (string, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrNoSession
	}

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return m.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || claims.Subject == "" {
		return "", ErrNoSession
	}
	return claims.Subject, nil
}

func (m *Manager) cookie(value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// IsNoSession reports whether err means the request is unauthenticated.
func IsNoSession(err error) bool {
	return errors.Is(err, ErrNoSession)
}
