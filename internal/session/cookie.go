package session

import (
	"log/slog"

	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	// CookieName is the gorilla session that carries the token.
	CookieName = "panel-session"
	tokenKey   = "token"
)

// CookieStore is a request-scoped Store backed by the gorilla session
// attached to an echo context by echo-contrib's session middleware.
type CookieStore struct {
	c echo.Context
}

// ForContext returns the Store for the browser that issued c's request.
func ForContext(c echo.Context) *CookieStore {
	return &CookieStore{c: c}
}

func (s *CookieStore) Get() (Token, bool) {
	sess, err := echosession.Get(CookieName, s.c)
	if err != nil {
		// A tampered or undecodable cookie is treated as no session.
		slog.Debug("session cookie unreadable", "error", err)
		return "", false
	}
	raw, _ := sess.Values[tokenKey].(string)
	t := Token(raw)
	return t, t.Present()
}

func (s *CookieStore) Set(t Token) {
	sess, err := echosession.Get(CookieName, s.c)
	if err != nil && sess == nil {
		slog.Error("failed to load session for write", "error", err)
		return
	}
	sess.Values[tokenKey] = string(t)
	if err := sess.Save(s.c.Request(), s.c.Response()); err != nil {
		slog.Error("failed to save session", "error", err)
	}
}

func (s *CookieStore) Clear() {
	sess, err := echosession.Get(CookieName, s.c)
	if err != nil && sess == nil {
		return
	}
	if _, ok := sess.Values[tokenKey]; !ok {
		return
	}
	delete(sess.Values, tokenKey)
	if err := sess.Save(s.c.Request(), s.c.Response()); err != nil {
		slog.Error("failed to save session", "error", err)
	}
}
