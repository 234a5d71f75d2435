package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/panel/internal/view"
	"github.com/nfrund/panel/internal/view/components"
)

const skeletonRows = 5

// ResourceHandler serves the management pages of one resource.
type ResourceHandler struct {
	resource view.Resource
}

// NewResourceHandler creates a ResourceHandler for r.
func NewResourceHandler(r view.Resource) *ResourceHandler {
	return &ResourceHandler{resource: r}
}

// Shell renders the page with a skeleton table (GET /<resource>).
func (h *ResourceHandler) Shell(c echo.Context) error {
	loader := components.Loader(h.resource.FragmentPath(), components.SkeletonTable(h.resource.Columns, skeletonRows))
	page := components.Shell(h.resource.Title(), h.resource.Slug, view.GetFlashData(c), loader)
	return c.Render(http.StatusOK, "", view.AdaptGomponentToTempl(page))
}

// Fragment renders the table for an authenticated mount (GET /fragments/<resource>).
func (h *ResourceHandler) Fragment(c echo.Context) error {
	return c.Render(http.StatusOK, "", components.ResourceTable(h.resource))
}
