// Package modules defines web module registry helpers.
package modules

import (
	"log/slog"
	"net/http"
	"time"

	profilestorage "github.com/ecohome/ecohome/internal/services/profile/storage"
	module "github.com/ecohome/ecohome/internal/services/web/module"
	"github.com/ecohome/ecohome/internal/services/web/modules/publicauth"
	"github.com/ecohome/ecohome/internal/services/web/platform/modulehandler"
	"github.com/ecohome/ecohome/internal/services/web/platform/requestmeta"
	webstorage "github.com/ecohome/ecohome/internal/services/web/storage"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// ModuleResolvers carries request-scoped resolver functions derived from the
// principal resolver. The server builds these and hands them to the registry.
type ModuleResolvers struct {
	ResolveViewer   module.ResolveViewer
	ResolveUserID   module.ResolveUserID
	ResolveLanguage module.ResolveLanguage
}

func (r ModuleResolvers) base() modulehandler.Base {
	deps := module.Dependencies{
		ResolveViewer:   r.ResolveViewer,
		ResolveUserID:   r.ResolveUserID,
		ResolveLanguage: r.ResolveLanguage,
	}
	if deps.ResolveViewer == nil {
		deps.ResolveViewer = func(*http.Request) module.Viewer { return module.Viewer{} }
	}
	return modulehandler.NewBase(deps)
}

// Dependencies carries the stores and shared config required to compose the
// web module registry. Modules only see the gateways built from these fields.
type Dependencies struct {
	// Profile store backing onboarding status, profile upserts and the dashboard.
	ProfileStore profilestorage.ProfileStore
	// Draft store for resumable onboarding progress. Nil disables resume.
	DraftStore webstorage.DraftStore
	DraftTTL   time.Duration

	// Session gateway for sign-in and callback verification.
	Sessions   publicauth.AuthGateway
	DevLogin   bool
	SessionTTL time.Duration

	RequestSchemePolicy requestmeta.SchemePolicy
	Logger              *slog.Logger
}

func (d Dependencies) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}
