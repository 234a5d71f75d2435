package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/panel/internal/authority"
	"github.com/nfrund/panel/internal/guard"
	"github.com/nfrund/panel/internal/middleware"
	"github.com/nfrund/panel/internal/session"
	"github.com/nfrund/panel/internal/view"
	"github.com/nfrund/panel/internal/view/components"
)

// DashboardFragmentPath is where the dashboard shell loads its content from.
const DashboardFragmentPath = "/fragments/dashboard"

// SummaryFetcher loads the dashboard counts for a token.
type SummaryFetcher interface {
	DashboardSummary(ctx context.Context, t session.Token) (*authority.Summary, error)
}

// DashboardHandler serves the dashboard root.
type DashboardHandler struct {
	summaries SummaryFetcher
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(summaries SummaryFetcher) *DashboardHandler {
	return &DashboardHandler{summaries: summaries}
}

// DashboardGet renders the dashboard shell with skeleton cards (GET /).
func (h *DashboardHandler) DashboardGet(c echo.Context) error {
	loader := components.Loader(DashboardFragmentPath, components.SkeletonCards(components.SummaryCardCount))
	page := components.Shell("Dashboard", "dashboard", view.GetFlashData(c), loader)
	return c.Render(http.StatusOK, "", view.AdaptGomponentToTempl(page))
}

// DashboardFragment renders the summary cards for an authenticated mount
// (GET /fragments/dashboard). The summary is fetched once, with the
// mount's token; a failed fetch ends the session like a rejected token.
func (h *DashboardHandler) DashboardFragment(c echo.Context) error {
	m := middleware.MountFrom(c)
	if m == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "dashboard fragment mounted without session guard")
	}

	summary, err := h.summaries.DashboardSummary(m.Context(), m.Token())
	if err != nil {
		middleware.FromContext(c.Request().Context()).Warn("dashboard summary failed", "mount_id", m.ID(), "error", err)
		m.Revoke(fmt.Errorf("%w: %w", guard.ErrDataFetchFailed, err))
		return nil
	}
	return c.Render(http.StatusOK, "", components.DashboardSummary(summary))
}
