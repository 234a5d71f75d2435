package account

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/samber/do/v2"

	"github.com/nfrund/panel/internal/config"
	"github.com/nfrund/panel/internal/handlers"
	"github.com/nfrund/panel/internal/login"
	"github.com/nfrund/panel/internal/middleware"
	"github.com/nfrund/panel/internal/module"
)

// AccountModule serves login and logout.
type AccountModule struct {
	module.BaseModule
}

// New creates a new instance of the AccountModule.
func New() *AccountModule {
	return &AccountModule{}
}

// Name returns the unique name for the module.
func (m *AccountModule) Name() string {
	return "account"
}

// Boot registers the login and logout routes. Login submissions are rate
// limited per client IP.
func (m *AccountModule) Boot(ctx context.Context, g *echo.Group, i do.Injector) error {
	cfg := do.MustInvoke[config.Provider](i)
	h := handlers.NewAuthHandler(do.MustInvoke[*login.Flow](i))

	slog.Info("Booting AccountModule: Setting up routes...", "login_rate_limit", cfg.GetLoginRateLimit())
	g.GET("/login", h.LoginGet)
	g.POST("/login", h.LoginPost, middleware.RateLimiter(cfg.GetLoginRateLimit()))
	g.GET("/logout", h.Logout)
	return nil
}
