// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	module "github.com/ecohome/ecohome/internal/services/web/module"
	"github.com/ecohome/ecohome/internal/services/web/platform/flash"
	"github.com/ecohome/ecohome/internal/services/web/platform/httpx"
	webi18n "github.com/ecohome/ecohome/internal/services/web/platform/i18n"
	webtemplates "github.com/ecohome/ecohome/internal/services/web/templates"
)

// ModulePage describes a module page response for both full-page and HTMX flows.
type ModulePage struct {
	Title      string
	StatusCode int
	Fragment   templ.Component
}

// WriteModulePage writes page. HTMX requests receive only the fragment; other
// requests receive the fragment inside the document layout.
func WriteModulePage(w http.ResponseWriter, r *http.Request, deps module.Dependencies, page ModulePage) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = templ.NopComponent
	}

	loc, lang := webi18n.ResolveLocalizer(w, r, deps.ResolveLanguage)
	ctx := httpx.RequestContext(r)
	if httpx.IsHTMXRequest(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(statusCode)
		return fragment.Render(ctx, w)
	}

	viewer := module.Viewer{}
	if deps.ResolveViewer != nil {
		viewer = deps.ResolveViewer(r)
	}
	var notice *webtemplates.NoticeView
	if pending, ok := flash.ReadAndClear(w, r); ok {
		notice = &webtemplates.NoticeView{Kind: string(pending.Kind), Message: loc.Sprintf(pending.Key)}
	}
	pageContext := webtemplates.PageContext{
		Title:  page.Title,
		Lang:   lang,
		Viewer: viewer,
		Notice: notice,
		Loc:    loc,
	}
	if r != nil && r.URL != nil {
		pageContext.Path = r.URL.Path
		pageContext.RawQuery = stripLangParam(r.URL.Query())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	return webtemplates.AppLayout(pageContext).Render(templ.WithChildren(ctx, fragment), w)
}

func stripLangParam(query url.Values) string {
	query.Del(webi18n.LangParam)
	return query.Encode()
}
