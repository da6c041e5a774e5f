// Package dashboard serves the signed-in home page with the saved household profile.
package dashboard

import (
	"net/http"

	"github.com/ecohome/ecohome/internal/services/web/module"
	"github.com/ecohome/ecohome/internal/services/web/platform/modulehandler"
	"github.com/ecohome/ecohome/internal/services/web/routepath"
)

// Option configures a dashboard module.
type Option func(*Module)

// WithGateway sets the dashboard profile gateway.
func WithGateway(g ProfileGateway) Option {
	return func(m *Module) { m.gateway = g }
}

// WithBase sets the handler base for authenticated routes.
func WithBase(b modulehandler.Base) Option {
	return func(m *Module) { m.base = b }
}

// Module provides authenticated dashboard routes.
type Module struct {
	gateway ProfileGateway
	base    modulehandler.Base
}

// New returns a dashboard module configured by the given options.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "dashboard" }

// Healthy reports whether the dashboard module has an operational gateway.
func (m Module) Healthy() bool {
	if m.gateway == nil {
		return false
	}
	_, unavailable := m.gateway.(unavailableGateway)
	return !unavailable
}

// Mount wires dashboard route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.gateway), m.base)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.DashboardPrefix, Handler: mux}, nil
}
