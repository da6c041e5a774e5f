package app

import (
	"net/http"
)

// BuildRootHandler composes a root mux using the configured module groups.
func BuildRootHandler(cfg Config, authRequired func(*http.Request) bool) (http.Handler, error) {
	return Compose(ComposeInput{
		AuthRequired:        authRequired,
		PublicModules:       cfg.PublicModules,
		ProtectedModules:    cfg.ProtectedModules,
		RequestSchemePolicy: cfg.RequestSchemePolicy,
		Logger:              cfg.Logger,
	})
}
