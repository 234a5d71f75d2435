package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/panel/internal/guard"
	"github.com/nfrund/panel/internal/session"
)

// MountContextKey is where RequireSession stores the authenticated mount.
const MountContextKey = "mount"

const (
	headerHXRequest  = "HX-Request"
	headerHXLocation = "HX-Location"
)

// Navigator performs client-side navigation on an echo response: htmx
// requests get an HX-Location header, everything else a 303.
type Navigator struct {
	c echo.Context
}

// NewNavigator returns a Navigator writing to c's response.
func NewNavigator(c echo.Context) *Navigator {
	return &Navigator{c: c}
}

// Navigate implements guard.Navigator.
func (n *Navigator) Navigate(dest string) {
	if n.c.Response().Committed {
		return
	}
	if n.c.Request().Header.Get(headerHXRequest) == "true" {
		n.c.Response().Header().Set(headerHXLocation, dest)
		_ = n.c.NoContent(http.StatusOK)
		return
	}
	_ = n.c.Redirect(http.StatusSeeOther, dest)
}

// RequireSession gates protected content. Every request mounts g against
// the caller's cookie session; the wrapped handler only runs once the
// mount is Authenticated. Unauthenticated callers are navigated to the
// login page and get no body. If the request goes away while the check is
// pending, nothing is written.
func RequireSession(g *guard.Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m := g.Mount(c.Request().Context(), session.ForContext(c), NewNavigator(c))
			defer m.Unmount()

			switch m.Run() {
			case guard.Authenticated:
				c.Set(MountContextKey, m)
				FromContext(c.Request().Context()).Debug("session authenticated", "mount_id", m.ID())
				return next(c)
			case guard.Unauthenticated:
				// The navigator has already written the response.
				return nil
			default:
				FromContext(c.Request().Context()).Debug("request ended before session check", "mount_id", m.ID())
				return nil
			}
		}
	}
}

// SessionPresent gates page shells: without a stored token the caller is
// sent straight to the login page and the authority is never asked.
func SessionPresent(loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := session.ForContext(c).Get(); !ok {
				NewNavigator(c).Navigate(loginPath)
				return nil
			}
			return next(c)
		}
	}
}

// MountFrom returns the mount stored by RequireSession, or nil.
func MountFrom(c echo.Context) *guard.Mount {
	m, _ := c.Get(MountContextKey).(*guard.Mount)
	return m
}
