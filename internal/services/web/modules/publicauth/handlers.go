package publicauth

import (
	"net/http"
	"time"

	apperrors "github.com/ecohome/ecohome/internal/services/web/platform/errors"
	"github.com/ecohome/ecohome/internal/services/web/platform/flash"
	"github.com/ecohome/ecohome/internal/services/web/platform/httpx"
	webi18n "github.com/ecohome/ecohome/internal/services/web/platform/i18n"
	"github.com/ecohome/ecohome/internal/services/web/platform/modulehandler"
	"github.com/ecohome/ecohome/internal/services/web/platform/requestmeta"
	"github.com/ecohome/ecohome/internal/services/web/platform/sessioncookie"
	"github.com/ecohome/ecohome/internal/services/web/routepath"
	webtemplates "github.com/ecohome/ecohome/internal/services/web/templates"
)

type handlerConfig struct {
	policy     requestmeta.SchemePolicy
	devLogin   bool
	sessionTTL time.Duration
}

type handlers struct {
	modulehandler.Base
	service service
	cfg     handlerConfig
}

func newHandlers(s service, base modulehandler.Base, cfg handlerConfig) handlers {
	return handlers{Base: base, service: s, cfg: cfg}
}

func (h handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	httpx.WriteRedirect(w, r, routepath.AppDashboard)
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteHTML(w, http.StatusOK, h.service.healthBody())
}

func (h handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	if h.redirectAuthenticatedToApp(w, r) {
		return
	}
	h.renderLogin(w, r, http.StatusOK, webtemplates.LoginView{})
}

func (h handlers) handleLoginPost(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.devLogin {
		h.renderLogin(w, r, http.StatusForbidden, webtemplates.LoginView{})
		return
	}
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.EK(apperrors.KindInvalidInput, "error.web.message.failed_to_parse_form", "failed to parse login form"))
		return
	}
	view := webtemplates.LoginView{Email: r.FormValue("email"), Name: r.FormValue("name")}
	sessionToken, err := h.service.signIn(r.Context(), view.Email, view.Name)
	if err != nil {
		if apperrors.HTTPStatus(err) == http.StatusBadRequest {
			loc, _ := h.PageLocalizer(w, r)
			view.Error = webi18n.LocalizeError(loc, err)
			h.renderLogin(w, r, http.StatusBadRequest, view)
			return
		}
		h.WriteError(w, r, err)
		return
	}
	sessioncookie.Write(w, r, sessionToken, h.cfg.sessionTTL, h.cfg.policy)
	httpx.WriteRedirect(w, r, routepath.AppDashboard)
}

func (h handlers) handleCallback(w http.ResponseWriter, r *http.Request) {
	sessionToken, err := h.service.acceptCallback(r.Context(), r.URL.Query().Get(routepath.CallbackTokenParam))
	if err != nil {
		if apperrors.HTTPStatus(err) == http.StatusUnauthorized {
			loc, _ := h.PageLocalizer(w, r)
			h.renderLogin(w, r, http.StatusUnauthorized, webtemplates.LoginView{Error: webi18n.LocalizeError(loc, err)})
			return
		}
		h.WriteError(w, r, err)
		return
	}
	sessioncookie.Write(w, r, sessionToken, h.cfg.sessionTTL, h.cfg.policy)
	http.Redirect(w, r, routepath.AppDashboard, http.StatusFound)
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	_, hasSession := sessioncookie.Read(r)
	if hasSession && !requestmeta.HasSameOriginProof(r, h.cfg.policy) {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	sessioncookie.Clear(w, r, h.cfg.policy)
	if hasSession {
		flash.Write(w, r, flash.Info("auth.notice.signed_out"), h.cfg.policy)
	}
	httpx.WriteRedirect(w, r, routepath.Login)
}

func (h handlers) renderLogin(w http.ResponseWriter, r *http.Request, status int, view webtemplates.LoginView) {
	loc, _ := h.PageLocalizer(w, r)
	view.Action = routepath.Login
	view.DevLogin = h.cfg.devLogin
	h.WritePage(w, r, webtemplates.T(loc, "auth.login.title"), status, webtemplates.LoginPage(view, loc))
}

func (h handlers) redirectAuthenticatedToApp(w http.ResponseWriter, r *http.Request) bool {
	if r == nil {
		return false
	}
	sessionToken, ok := sessioncookie.Read(r)
	if !ok || !h.service.hasValidSession(r.Context(), sessionToken) {
		return false
	}
	http.Redirect(w, r, routepath.AppDashboard, http.StatusFound)
	return true
}
