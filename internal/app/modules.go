package app

import (
	"github.com/nfrund/panel/internal/module"
	"github.com/nfrund/panel/internal/modules/account"
	"github.com/nfrund/panel/internal/modules/audit"
	"github.com/nfrund/panel/internal/modules/catalog"
	"github.com/nfrund/panel/internal/modules/dashboard"
	"github.com/nfrund/panel/internal/view"
)

// NewModules creates and returns the list of all active modules for the application.
// This is the single source of truth for which features are enabled.
func NewModules() []module.Module {
	return []module.Module{
		audit.New(),
		account.New(),
		dashboard.New(),
		catalog.New(view.Resources),
	}
}
