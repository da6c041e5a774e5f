// Package module defines the feature contract used by web composition.
package module

import "net/http"

// Viewer contains user-facing chrome data for app pages.
type Viewer struct {
	UserID      string
	DisplayName string
}

// SignedIn reports whether the viewer belongs to an authenticated user.
func (v Viewer) SignedIn() bool {
	return v.UserID != ""
}

// ResolveViewer resolves app chrome viewer state for a request.
type ResolveViewer func(*http.Request) Viewer

// ResolveUserID resolves the authenticated user id for a request.
type ResolveUserID func(*http.Request) string

// ResolveLanguage returns the effective request language.
type ResolveLanguage func(*http.Request) string

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}

// HealthReporter is implemented by modules whose gateways can be absent.
type HealthReporter interface {
	Healthy() bool
}

// Dependencies carries the request-scoped resolvers shared by every module.
type Dependencies struct {
	ResolveViewer   ResolveViewer
	ResolveUserID   ResolveUserID
	ResolveLanguage ResolveLanguage
}
