package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/panel/internal/authority"
	"github.com/nfrund/panel/internal/login"
	"github.com/nfrund/panel/internal/middleware"
	"github.com/nfrund/panel/internal/session"
	"github.com/nfrund/panel/internal/view"
	"github.com/nfrund/panel/internal/view/components"
	g "maragu.dev/gomponents"
)

// AuthHandler handles the login page and logout.
type AuthHandler struct {
	flow *login.Flow
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(flow *login.Flow) *AuthHandler {
	return &AuthHandler{flow: flow}
}

// LoginGet renders the login page (GET /login).
func (h *AuthHandler) LoginGet(c echo.Context) error {
	flashes := view.GetFlashData(c)
	page := components.Bare("Login", flashes, components.LoginForm("", ""))
	return c.Render(http.StatusOK, "", view.AdaptGomponentToTempl(page))
}

// LoginPost handles the login form (POST /login). On success the token is
// stored and the response navigates to the dashboard after the configured
// delay; on failure the form comes back with the authority's message.
func (h *AuthHandler) LoginPost(c echo.Context) error {
	var creds authority.Credentials
	if err := c.Bind(&creds); err != nil {
		return h.renderLogin(c, components.LoginForm("", "Email and password are required."))
	}

	if err := h.flow.Submit(c.Request().Context(), session.ForContext(c), creds); err != nil {
		return h.renderLogin(c, components.LoginForm(creds.Email, login.Message(err)))
	}

	middleware.FromContext(c.Request().Context()).Info("admin logged in", "email", creds.Email)
	return h.renderLogin(c, components.LoginSuccess(login.RootPath, h.flow.RedirectDelay()))
}

// Logout clears the session and returns to the login page (GET /logout).
func (h *AuthHandler) Logout(c echo.Context) error {
	h.flow.Logout(c.Request().Context(), session.ForContext(c))
	view.SetFlashSuccess(c, "You have been logged out.")
	return c.Redirect(http.StatusSeeOther, "/login")
}

// renderLogin sends body alone to htmx and wrapped in the page otherwise.
func (h *AuthHandler) renderLogin(c echo.Context, body g.Node) error {
	if isHTMX(c) {
		return c.Render(http.StatusOK, "", body)
	}
	return c.Render(http.StatusOK, "", view.AdaptGomponentToTempl(components.Bare("Login", view.FlashData{}, body)))
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}
