package dashboard

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/samber/do/v2"

	"github.com/nfrund/panel/internal/authority"
	"github.com/nfrund/panel/internal/guard"
	"github.com/nfrund/panel/internal/handlers"
	"github.com/nfrund/panel/internal/middleware"
	"github.com/nfrund/panel/internal/module"
)

// DashboardModule serves the protected root.
type DashboardModule struct {
	module.BaseModule
}

// New creates a new instance of the DashboardModule.
func New() *DashboardModule {
	return &DashboardModule{}
}

// Name returns the unique name for the module.
func (m *DashboardModule) Name() string {
	return "dashboard"
}

// Boot registers the dashboard shell and its guarded fragment.
func (m *DashboardModule) Boot(ctx context.Context, g *echo.Group, i do.Injector) error {
	gd := do.MustInvoke[*guard.Guard](i)
	h := handlers.NewDashboardHandler(do.MustInvoke[*authority.Client](i))

	slog.Info("Booting DashboardModule: Setting up routes...")
	g.GET("/", h.DashboardGet, middleware.SessionPresent(gd.LoginPath()))
	g.GET(handlers.DashboardFragmentPath, h.DashboardFragment, middleware.RequireSession(gd))
	return nil
}
