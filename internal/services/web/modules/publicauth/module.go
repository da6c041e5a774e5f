// Package publicauth serves the unauthenticated entry routes: root, health,
// sign-in, sign-out and the auth provider callback.
package publicauth

import (
	"net/http"
	"strings"
	"time"

	"github.com/ecohome/ecohome/internal/services/web/module"
	"github.com/ecohome/ecohome/internal/services/web/platform/modulehandler"
	"github.com/ecohome/ecohome/internal/services/web/platform/requestmeta"
	"github.com/ecohome/ecohome/internal/services/web/routepath"
)

// Option configures a public auth module.
type Option func(*Module)

// WithGateway sets the session gateway.
func WithGateway(g AuthGateway) Option {
	return func(m *Module) { m.gateway = g }
}

// WithBase sets the handler base used for page rendering.
func WithBase(b modulehandler.Base) Option {
	return func(m *Module) { m.base = b }
}

// WithSchemePolicy sets the request scheme policy for cookie handling.
func WithSchemePolicy(p requestmeta.SchemePolicy) Option {
	return func(m *Module) { m.requestMeta = p }
}

// WithDevLogin enables the development email sign-in form.
func WithDevLogin(enabled bool) Option {
	return func(m *Module) { m.devLogin = enabled }
}

// WithSessionTTL sets the session cookie lifetime.
func WithSessionTTL(ttl time.Duration) Option {
	return func(m *Module) { m.sessionTTL = ttl }
}

// Module provides unauthenticated root/auth routes.
type Module struct {
	gateway        AuthGateway
	base           modulehandler.Base
	requestMeta    requestmeta.SchemePolicy
	devLogin       bool
	sessionTTL     time.Duration
	id             string
	prefix         string
	registerRoutes func(*http.ServeMux, handlers)
}

// NewShell returns the root module: landing redirect, health, sign-in and sign-out.
func NewShell(opts ...Option) Module {
	return newPublicModule("public", routepath.Root, registerShellRoutes, opts)
}

// NewAuthRedirect returns the module owning provider callback routes.
func NewAuthRedirect(opts ...Option) Module {
	return newPublicModule("public-auth-redirect", routepath.AuthPrefix, registerAuthRedirectRoutes, opts)
}

func newPublicModule(id string, prefix string, register func(*http.ServeMux, handlers), opts []Option) Module {
	m := Module{
		id:             strings.TrimSpace(id),
		prefix:         strings.TrimSpace(prefix),
		registerRoutes: register,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable identifier for diagnostics and startup logs.
func (m Module) ID() string {
	id := strings.TrimSpace(m.id)
	if id == "" {
		return "public"
	}
	return id
}

// Healthy reports whether the module has an operational session gateway.
func (m Module) Healthy() bool {
	if m.gateway == nil {
		return false
	}
	_, unavailable := m.gateway.(unavailableAuthGateway)
	return !unavailable
}

// Mount wires public routes under the module prefix.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	svc := newService(m.gateway)
	h := newHandlers(svc, m.base, handlerConfig{
		policy:     m.requestMeta,
		devLogin:   m.devLogin,
		sessionTTL: m.sessionTTL,
	})
	if m.registerRoutes != nil {
		m.registerRoutes(mux, h)
	} else {
		registerShellRoutes(mux, h)
	}
	prefix := strings.TrimSpace(m.prefix)
	if prefix == "" {
		prefix = routepath.Root
	}
	return module.Mount{Prefix: prefix, Handler: mux}, nil
}
