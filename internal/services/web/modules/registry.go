package modules

import (
	"github.com/ecohome/ecohome/internal/services/web/modules/dashboard"
	"github.com/ecohome/ecohome/internal/services/web/modules/onboarding"
	"github.com/ecohome/ecohome/internal/services/web/modules/publicauth"
	"github.com/ecohome/ecohome/internal/services/web/modules/publicauth/surfaces/authredirect"
	"github.com/ecohome/ecohome/internal/services/web/modules/publicauth/surfaces/shell"
)

// DefaultPublicModules returns the unauthenticated web modules.
func DefaultPublicModules(deps Dependencies, res ModuleResolvers) []Module {
	opts := []publicauth.Option{
		publicauth.WithGateway(deps.Sessions),
		publicauth.WithBase(res.base()),
		publicauth.WithSchemePolicy(deps.RequestSchemePolicy),
		publicauth.WithDevLogin(deps.DevLogin),
		publicauth.WithSessionTTL(deps.SessionTTL),
	}
	return []Module{
		shell.New(opts...),
		authredirect.New(opts...),
	}
}

// DefaultProtectedModules returns the authenticated web modules.
func DefaultProtectedModules(deps Dependencies, res ModuleResolvers) []Module {
	base := res.base()
	return []Module{
		dashboard.New(
			dashboard.WithGateway(dashboard.NewStoreGateway(deps.ProfileStore)),
			dashboard.WithBase(base),
		),
		onboarding.New(
			onboarding.WithProfileGateway(onboarding.NewStoreProfileGateway(deps.ProfileStore)),
			onboarding.WithDraftGateway(onboarding.NewStoreDraftGateway(deps.DraftStore, deps.DraftTTL)),
			onboarding.WithBase(base),
			onboarding.WithLogger(deps.logger()),
			onboarding.WithSchemePolicy(deps.RequestSchemePolicy),
		),
	}
}
