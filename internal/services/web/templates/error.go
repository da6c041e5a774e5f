package templates

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/ecohome/ecohome/internal/services/web/routepath"
)

const (
	appErrorTitleKey       = "error.http.title"
	appErrorBackKey        = "error.http.back_home"
	appErrorNotFoundKey    = "error.http.not_found"
	appErrorUnavailableKey = "error.http.unavailable"
	appErrorInternalKey    = "error.http.internal"
)

// AppErrorPageTitle returns the browser page title for error pages.
func AppErrorPageTitle(statusCode int, loc Localizer) string {
	return appErrorMessage(statusCode, loc)
}

// AppErrorState renders the error body for statusCode.
func AppErrorState(statusCode int, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw("<section class=\"error-state\"")
		h.intAttr("data-status", normalizeAppErrorStatus(statusCode))
		h.raw("><h1>")
		h.text(T(loc, appErrorTitleKey))
		h.raw("</h1><p>")
		h.text(appErrorMessage(statusCode, loc))
		h.raw("</p><a")
		h.attr("href", routepath.Root)
		h.raw(">")
		h.text(T(loc, appErrorBackKey))
		h.raw("</a></section>")
	})
}

func appErrorMessage(statusCode int, loc Localizer) string {
	switch normalizeAppErrorStatus(statusCode) {
	case http.StatusNotFound:
		return T(loc, appErrorNotFoundKey)
	case http.StatusServiceUnavailable:
		return T(loc, appErrorUnavailableKey)
	default:
		return T(loc, appErrorInternalKey)
	}
}

func normalizeAppErrorStatus(statusCode int) int {
	switch statusCode {
	case http.StatusNotFound, http.StatusServiceUnavailable:
		return statusCode
	default:
		return http.StatusInternalServerError
	}
}
