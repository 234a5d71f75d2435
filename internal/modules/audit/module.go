package audit

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/samber/do/v2"

	"github.com/nfrund/panel/internal/events"
	"github.com/nfrund/panel/internal/module"
)

// AuditModule logs every session event published on the bus.
type AuditModule struct {
	module.BaseModule
	cancel context.CancelFunc
}

// New creates a new instance of the AuditModule.
func New() *AuditModule {
	return &AuditModule{}
}

// Name returns the unique name for the module.
func (m *AuditModule) Name() string {
	return "audit"
}

// Boot starts the audit subscription. It has no routes.
func (m *AuditModule) Boot(ctx context.Context, g *echo.Group, i do.Injector) error {
	bus := do.MustInvoke[*events.Bus](i)
	ctx, m.cancel = context.WithCancel(ctx)
	return events.Audit(ctx, bus, slog.Default().With("component", "audit"))
}

// Shutdown ends the subscription.
func (m *AuditModule) Shutdown(ctx context.Context) error {
	if m.cancel != nil {
		m.cancel()
	}
	return nil
}
