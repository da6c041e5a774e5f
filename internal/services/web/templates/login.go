package templates

import (
	"context"
	"strings"

	"github.com/a-h/templ"
)

// LoginView is the sign-in page state.
type LoginView struct {
	Action   string
	DevLogin bool
	Email    string
	Name     string
	Error    string
}

// LoginPage renders the sign-in page.
func LoginPage(view LoginView, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw("<section class=\"login\"><h1>")
		h.text(T(loc, "auth.login.heading"))
		h.raw("</h1>")
		if msg := strings.TrimSpace(view.Error); msg != "" {
			h.raw("<p class=\"form-error\" role=\"alert\">")
			h.text(msg)
			h.raw("</p>")
		}
		if !view.DevLogin {
			h.raw("<p>")
			h.text(T(loc, "auth.login.dev_disabled"))
			h.raw("</p></section>")
			return
		}
		h.raw("<form method=\"post\"")
		h.attr("action", view.Action)
		h.raw("><label for=\"login-email\">")
		h.text(T(loc, "auth.login.email"))
		h.raw("</label><input type=\"email\" id=\"login-email\" name=\"email\" autocomplete=\"email\" required")
		h.attr("value", view.Email)
		h.raw("><label for=\"login-name\">")
		h.text(T(loc, "auth.login.name"))
		h.raw("</label><input type=\"text\" id=\"login-name\" name=\"name\" autocomplete=\"name\"")
		h.attr("value", view.Name)
		h.raw("><button type=\"submit\">")
		h.text(T(loc, "auth.login.submit"))
		h.raw("</button></form></section>")
	})
}
