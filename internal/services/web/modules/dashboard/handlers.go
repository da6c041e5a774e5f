package dashboard

import (
	"context"
	"net/http"

	"github.com/ecohome/ecohome/internal/services/web/platform/httpx"
	"github.com/ecohome/ecohome/internal/services/web/platform/modulehandler"
	"github.com/ecohome/ecohome/internal/services/web/routepath"
	webtemplates "github.com/ecohome/ecohome/internal/services/web/templates"
)

type dashboardService interface {
	loadDashboard(ctx context.Context, userID string) (dashboardState, error)
}

type handlers struct {
	modulehandler.Base
	service dashboardService
}

func newHandlers(s dashboardService, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx, userID := h.RequestContextAndUserID(r)
	state, err := h.service.loadDashboard(ctx, userID)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	if state.NeedsOnboarding {
		httpx.WriteRedirect(w, r, routepath.AppOnboarding)
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, webtemplates.T(loc, "dashboard.page_title"), http.StatusOK, webtemplates.DashboardPage(webtemplates.DashboardView{Profile: state.Profile}, loc))
}
