// Package app wires the panel's core services together.
package app

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/nfrund/panel/internal/authority"
	"github.com/nfrund/panel/internal/config"
	"github.com/nfrund/panel/internal/events"
	"github.com/nfrund/panel/internal/guard"
	"github.com/nfrund/panel/internal/login"
	"github.com/nfrund/panel/internal/rendering"
)

// NewInjector creates the root scope holding the services every module
// shares. Services are built lazily on first invoke.
func NewInjector(cfg config.Provider) do.Injector {
	i := do.New()
	do.ProvideValue(i, cfg)
	do.Provide(i, newAuthorityClient)
	do.Provide(i, newBus)
	do.Provide(i, newValidator)
	do.Provide(i, newGuard)
	do.Provide(i, newLoginFlow)
	do.Provide(i, newRenderer)
	return i
}

func newAuthorityClient(i do.Injector) (*authority.Client, error) {
	cfg := do.MustInvoke[config.Provider](i)
	return authority.NewClient(cfg.GetAPIBaseURL(), authority.WithTimeout(cfg.GetAPITimeout())), nil
}

func newBus(i do.Injector) (*events.Bus, error) {
	return events.NewBus(), nil
}

func newValidator(i do.Injector) (*login.Validator, error) {
	return login.NewValidator(), nil
}

func newGuard(i do.Injector) (*guard.Guard, error) {
	cfg := do.MustInvoke[config.Provider](i)
	return guard.New(guard.Options{
		Validator: do.MustInvoke[*authority.Client](i),
		Retry: guard.RetryPolicy{
			Retries: cfg.GetValidateRetries(),
			Backoff: cfg.GetValidateBackoff(),
		},
		Observer: events.NewGuardObserver(do.MustInvoke[*events.Bus](i)),
		Logger:   slog.Default().With("component", "guard"),
	}), nil
}

func newLoginFlow(i do.Injector) (*login.Flow, error) {
	cfg := do.MustInvoke[config.Provider](i)
	return login.NewFlow(do.MustInvoke[*authority.Client](i),
		login.WithRedirectDelay(cfg.GetLoginRedirectDelay()),
		login.WithPublisher(do.MustInvoke[*events.Bus](i)),
		login.WithValidator(do.MustInvoke[*login.Validator](i)),
	), nil
}

func newRenderer(i do.Injector) (*rendering.UniversalRenderer, error) {
	return rendering.NewUniversalRenderer(), nil
}
