package server

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/nfrund/panel/internal/events"
)

// Shutdown stops accepting requests, shuts the modules down in reverse
// boot order and closes the event bus.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down server")
	var errs []error
	if err := s.E.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	for i := len(s.modules) - 1; i >= 0; i-- {
		m := s.modules[i]
		if err := m.Shutdown(ctx); err != nil {
			slog.Error("Module shutdown failed", "module", m.Name(), "error", err)
			errs = append(errs, err)
		}
	}
	if bus, err := do.Invoke[*events.Bus](s.injector); err == nil {
		if err := bus.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
