package onboarding

import (
	"net/http"

	"github.com/ecohome/ecohome/internal/services/web/platform/httpx"
	"github.com/ecohome/ecohome/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AppOnboarding, h.handleShell)
	mux.HandleFunc(http.MethodGet+" "+routepath.OnboardingPrefix+"{$}", h.handleShell)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppOnboardingWizard, h.handleWizard)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppOnboardingStep, h.handleStep)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppOnboardingStep, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodPost+" "+routepath.AppOnboardingFinish, h.handleFinish)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppOnboardingFinish, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodGet+" "+routepath.OnboardingPrefix+"{rest...}", h.WriteNotFound)
}
