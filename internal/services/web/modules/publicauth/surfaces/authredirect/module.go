// Package authredirect exposes the auth provider callback as its own module surface.
package authredirect

import (
	module "github.com/ecohome/ecohome/internal/services/web/module"
	"github.com/ecohome/ecohome/internal/services/web/modules/publicauth"
)

// Module owns post-auth redirect routes.
type Module struct {
	inner publicauth.Module
}

// New builds the auth redirect module.
func New(opts ...publicauth.Option) Module {
	return Module{inner: publicauth.NewAuthRedirect(opts...)}
}

// ID returns the stable module identifier.
func (m Module) ID() string {
	return m.inner.ID()
}

// Healthy reports whether the session gateway is operational.
func (m Module) Healthy() bool {
	return m.inner.Healthy()
}

// Mount returns the auth redirect route mount contract.
func (m Module) Mount() (module.Mount, error) {
	return m.inner.Mount()
}
