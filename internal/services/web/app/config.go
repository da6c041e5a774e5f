package app

import (
	"log/slog"

	module "github.com/ecohome/ecohome/internal/services/web/module"
	"github.com/ecohome/ecohome/internal/services/web/platform/requestmeta"
)

// Config captures the composition inputs for the web root handler.
type Config struct {
	PublicModules       []module.Module
	ProtectedModules    []module.Module
	RequestSchemePolicy requestmeta.SchemePolicy
	Logger              *slog.Logger
}
