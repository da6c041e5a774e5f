package templates

import (
	"context"
	"strings"

	"github.com/a-h/templ"
	module "github.com/ecohome/ecohome/internal/services/web/module"
	"github.com/ecohome/ecohome/internal/services/web/routepath"
)

// HTMXScriptURL is the pinned htmx build loaded by every page.
const HTMXScriptURL = "https://unpkg.com/htmx.org@2.0.4"

// PageContext carries the request-scoped values shared by full-page layouts.
type PageContext struct {
	Title    string
	Lang     string
	Path     string
	RawQuery string
	Viewer   module.Viewer
	Notice   *NoticeView
	Loc      Localizer
}

// NoticeView is a resolved one-time notice.
type NoticeView struct {
	Kind    string
	Message string
}

// AppLayout renders the document shell around the children in ctx.
func AppLayout(page PageContext) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		appName := T(page.Loc, "core.app_name")
		title := strings.TrimSpace(page.Title)
		if title == "" {
			title = appName
		} else {
			title += " · " + appName
		}
		lang := strings.TrimSpace(page.Lang)
		if lang == "" {
			lang = "en-US"
		}

		h.raw("<!doctype html><html")
		h.attr("lang", lang)
		h.raw("><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>")
		h.text(title)
		h.raw("</title><link rel=\"stylesheet\"")
		h.attr("href", routepath.StaticPrefix+"app.css")
		h.raw("><script defer")
		h.attr("src", HTMXScriptURL)
		h.raw("></script></head><body>")

		h.raw("<header class=\"topbar\"><a class=\"brand\"")
		h.attr("href", routepath.Root)
		h.raw(">")
		h.text(appName)
		h.raw("</a><nav class=\"topbar-nav\">")
		if page.Viewer.SignedIn() {
			h.raw("<a")
			h.attr("href", routepath.AppDashboard)
			h.raw(">")
			h.text(T(page.Loc, "core.nav.dashboard"))
			h.raw("</a>")
			if name := strings.TrimSpace(page.Viewer.DisplayName); name != "" {
				h.raw("<span class=\"viewer-name\">")
				h.text(name)
				h.raw("</span>")
			}
			h.raw("<form method=\"post\" class=\"inline\"")
			h.attr("action", routepath.Logout)
			h.raw("><button type=\"submit\" class=\"link\">")
			h.text(T(page.Loc, "core.sign_out"))
			h.raw("</button></form>")
		}
		h.raw("<ul class=\"lang-switch\"")
		h.attr("aria-label", T(page.Loc, "core.language"))
		h.raw(">")
		for _, option := range LanguageOptions(page) {
			h.raw("<li><a")
			h.attr("href", option.URL)
			h.attr("hreflang", option.Tag)
			if option.Active {
				h.attr("aria-current", "true")
			}
			h.raw(">")
			h.text(option.Label)
			h.raw("</a></li>")
		}
		h.raw("</ul></nav></header>")

		if page.Notice != nil && strings.TrimSpace(page.Notice.Message) != "" {
			h.raw("<div role=\"status\"")
			h.attr("class", "notice notice-"+page.Notice.Kind)
			h.raw(">")
			h.text(page.Notice.Message)
			h.raw("</div>")
		}

		h.raw("<main id=\"app-main\">")
		h.render(ctx, templ.GetChildren(ctx))
		h.raw("</main></body></html>")
	})
}
