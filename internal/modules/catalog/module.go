package catalog

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/samber/do/v2"

	"github.com/nfrund/panel/internal/guard"
	"github.com/nfrund/panel/internal/handlers"
	"github.com/nfrund/panel/internal/middleware"
	"github.com/nfrund/panel/internal/module"
	"github.com/nfrund/panel/internal/view"
)

// CatalogModule serves one guarded page per managed resource.
type CatalogModule struct {
	module.BaseModule
	resources []view.Resource
}

// New creates a CatalogModule for resources.
func New(resources []view.Resource) *CatalogModule {
	return &CatalogModule{resources: resources}
}

// Name returns the unique name for the module.
func (m *CatalogModule) Name() string {
	return "catalog"
}

// Boot registers a shell and a guarded fragment for every resource.
func (m *CatalogModule) Boot(ctx context.Context, g *echo.Group, i do.Injector) error {
	gd := do.MustInvoke[*guard.Guard](i)
	present := middleware.SessionPresent(gd.LoginPath())
	required := middleware.RequireSession(gd)

	for _, r := range m.resources {
		h := handlers.NewResourceHandler(r)
		g.GET(r.Path(), h.Shell, present)
		g.GET(r.FragmentPath(), h.Fragment, required)
		slog.Debug("Registered resource routes", "resource", r.Slug, "path", r.Path())
	}
	return nil
}
