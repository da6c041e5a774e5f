// Package modulehandler provides the shared base embedded by module handlers
// for user resolution, localization, page rendering and error writing.
package modulehandler

import (
	"context"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	module "github.com/ecohome/ecohome/internal/services/web/module"
	webi18n "github.com/ecohome/ecohome/internal/services/web/platform/i18n"
	"github.com/ecohome/ecohome/internal/services/web/platform/pagerender"
	"github.com/ecohome/ecohome/internal/services/web/platform/webctx"
	"github.com/ecohome/ecohome/internal/services/web/platform/weberror"
	webtemplates "github.com/ecohome/ecohome/internal/services/web/templates"
)

// Base carries the request-scoped resolvers used by module handlers.
type Base struct {
	deps module.Dependencies
}

// NewBase builds a handler base from module dependencies.
func NewBase(deps module.Dependencies) Base {
	return Base{deps: deps}
}

// Dependencies returns the resolvers backing this base.
func (b Base) Dependencies() module.Dependencies {
	return b.deps
}

// RequestUserID extracts the authenticated user id from the request.
func (b Base) RequestUserID(r *http.Request) string {
	if r == nil || b.deps.ResolveUserID == nil {
		return ""
	}
	return strings.TrimSpace(b.deps.ResolveUserID(r))
}

// RequestContextAndUserID returns a context carrying the user id and the raw id.
func (b Base) RequestContextAndUserID(r *http.Request) (context.Context, string) {
	return webctx.WithResolvedUserID(r, b.deps.ResolveUserID), b.RequestUserID(r)
}

// ResolveRequestViewer resolves chrome viewer state for a request.
func (b Base) ResolveRequestViewer(r *http.Request) module.Viewer {
	if b.deps.ResolveViewer == nil {
		return module.Viewer{}
	}
	return b.deps.ResolveViewer(r)
}

// PageLocalizer resolves a localizer and language tag from the request.
func (b Base) PageLocalizer(w http.ResponseWriter, r *http.Request) (webtemplates.Localizer, string) {
	return webi18n.ResolveLocalizer(w, r, b.deps.ResolveLanguage)
}

// WriteError renders a localized module error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, err, b.deps)
}

// WriteNotFound renders a 404 error page.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, b.deps)
}

// WritePage renders a module page (HTMX-aware).
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, title string, statusCode int, fragment templ.Component) {
	if err := pagerender.WriteModulePage(w, r, b.deps, pagerender.ModulePage{
		Title:      title,
		StatusCode: statusCode,
		Fragment:   fragment,
	}); err != nil {
		b.WriteError(w, r, err)
	}
}
