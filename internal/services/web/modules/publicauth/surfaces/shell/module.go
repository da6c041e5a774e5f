// Package shell exposes the root entry routes as their own module surface.
package shell

import (
	module "github.com/ecohome/ecohome/internal/services/web/module"
	"github.com/ecohome/ecohome/internal/services/web/modules/publicauth"
)

// Module owns the root, health, sign-in and sign-out routes.
type Module struct {
	inner publicauth.Module
}

// New builds the shell module.
func New(opts ...publicauth.Option) Module {
	return Module{inner: publicauth.NewShell(opts...)}
}

// ID returns the stable module identifier.
func (m Module) ID() string {
	return m.inner.ID()
}

// Healthy reports whether the session gateway is operational.
func (m Module) Healthy() bool {
	return m.inner.Healthy()
}

// Mount returns the shell route mount contract.
func (m Module) Mount() (module.Mount, error) {
	return m.inner.Mount()
}
