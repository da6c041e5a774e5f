// Package onboarding serves the household onboarding wizard.
//
// The wizard is guarded per request: signed-out users go to login and users
// who already finished go to the dashboard. In-progress answers are kept as a
// per-user draft until the final step writes the household profile.
package onboarding

import (
	"log/slog"
	"net/http"

	"github.com/ecohome/ecohome/internal/services/web/module"
	"github.com/ecohome/ecohome/internal/services/web/platform/modulehandler"
	"github.com/ecohome/ecohome/internal/services/web/platform/requestmeta"
	"github.com/ecohome/ecohome/internal/services/web/routepath"
)

// Option configures an onboarding module.
type Option func(*Module)

// WithProfileGateway sets the profile gateway.
func WithProfileGateway(g ProfileGateway) Option {
	return func(m *Module) { m.profiles = g }
}

// WithDraftGateway sets the draft gateway.
func WithDraftGateway(g DraftGateway) Option {
	return func(m *Module) { m.drafts = g }
}

// WithBase sets the handler base for authenticated routes.
func WithBase(b modulehandler.Base) Option {
	return func(m *Module) { m.base = b }
}

// WithLogger sets the module logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Module) { m.logger = logger }
}

// WithSchemePolicy sets the request scheme policy for cookie handling.
func WithSchemePolicy(p requestmeta.SchemePolicy) Option {
	return func(m *Module) { m.flashMeta = p }
}

// Module provides authenticated onboarding routes.
type Module struct {
	profiles  ProfileGateway
	drafts    DraftGateway
	base      modulehandler.Base
	logger    *slog.Logger
	flashMeta requestmeta.SchemePolicy
}

// New returns an onboarding module configured by the given options.
// Without gateways the module starts in degraded mode.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "onboarding" }

// Healthy reports whether both gateways are operational.
func (m Module) Healthy() bool {
	if m.profiles == nil || m.drafts == nil {
		return false
	}
	if _, unavailable := m.profiles.(unavailableProfileGateway); unavailable {
		return false
	}
	_, unavailable := m.drafts.(unavailableDraftGateway)
	return !unavailable
}

// Mount wires onboarding route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	svc := newService(m.profiles, m.drafts, m.logger)
	h := newHandlers(svc, m.base, m.flashMeta)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.OnboardingPrefix, Handler: mux}, nil
}
