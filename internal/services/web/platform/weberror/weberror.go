// Package weberror turns handler failures into localized responses.
//
// Client errors (4xx other than 404) answer with a short plain-text message.
// Not-found and server errors render the full error page so the user keeps
// the app chrome and a way back.
package weberror

import (
	"net/http"

	module "github.com/ecohome/ecohome/internal/services/web/module"
	apperrors "github.com/ecohome/ecohome/internal/services/web/platform/errors"
	webi18n "github.com/ecohome/ecohome/internal/services/web/platform/i18n"
	"github.com/ecohome/ecohome/internal/services/web/platform/pagerender"
	webtemplates "github.com/ecohome/ecohome/internal/services/web/templates"
)

// ShouldRenderAppError reports whether status gets the error page.
func ShouldRenderAppError(status int) bool {
	return status == http.StatusNotFound || status >= http.StatusInternalServerError
}

// PublicMessage returns text that is safe to show for err. Internal error
// messages never reach the user: without a catalog key the status text is used.
func PublicMessage(loc webi18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if key := apperrors.LocalizationKey(err); key != "" && loc != nil {
		if text := loc.Sprintf(key); text != "" {
			return text
		}
	}
	status := apperrors.HTTPStatus(err)
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	return http.StatusText(status)
}

// WriteModuleError responds to err with the status it maps to.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, deps module.Dependencies) {
	respond(w, r, apperrors.HTTPStatus(err), err, deps)
}

// WriteAppError renders the error page for status. Statuses that do not use
// the page are reported as 500.
func WriteAppError(w http.ResponseWriter, r *http.Request, status int, deps module.Dependencies) {
	if !ShouldRenderAppError(status) {
		status = http.StatusInternalServerError
	}
	respond(w, r, status, nil, deps)
}

func respond(w http.ResponseWriter, r *http.Request, status int, err error, deps module.Dependencies) {
	if w == nil {
		return
	}
	loc, _ := webi18n.ResolveLocalizer(w, r, deps.ResolveLanguage)
	if !ShouldRenderAppError(status) {
		http.Error(w, PublicMessage(loc, err), status)
		return
	}
	page := pagerender.ModulePage{
		Title:      webtemplates.AppErrorPageTitle(status, loc),
		StatusCode: status,
		Fragment:   webtemplates.AppErrorState(status, loc),
	}
	if renderErr := pagerender.WriteModulePage(w, r, deps, page); renderErr != nil {
		http.Error(w, http.StatusText(status), status)
	}
}
