package onboarding

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/ecohome/ecohome/internal/services/web/platform/errors"
	"github.com/ecohome/ecohome/internal/services/web/platform/flash"
	"github.com/ecohome/ecohome/internal/services/web/platform/httpx"
	webi18n "github.com/ecohome/ecohome/internal/services/web/platform/i18n"
	"github.com/ecohome/ecohome/internal/services/web/platform/modulehandler"
	"github.com/ecohome/ecohome/internal/services/web/platform/requestmeta"
	"github.com/ecohome/ecohome/internal/services/web/routepath"
	webtemplates "github.com/ecohome/ecohome/internal/services/web/templates"
)

// onboardingService defines the service operations used by onboarding handlers.
type onboardingService interface {
	guard(ctx context.Context, userID string) (guardResult, error)
	update(ctx context.Context, userID string, sub submission) (stepResult, error)
	finish(ctx context.Context, userID string, sub submission) (finishResult, error)
}

type handlers struct {
	modulehandler.Base
	service   onboardingService
	flashMeta requestmeta.SchemePolicy
}

func newHandlers(s onboardingService, base modulehandler.Base, policy requestmeta.SchemePolicy) handlers {
	return handlers{Base: base, service: s, flashMeta: policy}
}

// handleShell renders the pending state; the wizard loads once the guard resolves.
func (h handlers) handleShell(w http.ResponseWriter, r *http.Request) {
	if h.RequestUserID(r) == "" {
		httpx.WriteRedirect(w, r, routepath.Login)
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, webtemplates.T(loc, "onboarding.page_title"), http.StatusOK, webtemplates.OnboardingShell(routepath.AppOnboardingWizard, loc))
}

func (h handlers) handleWizard(w http.ResponseWriter, r *http.Request) {
	ctx, userID := h.RequestContextAndUserID(r)
	result, err := h.service.guard(ctx, userID)
	if errors.Is(err, ErrGuardAbandoned) {
		return
	}
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	switch result.Decision {
	case GuardRedirectLogin:
		httpx.WriteRedirect(w, r, routepath.Login)
	case GuardRedirectDashboard:
		httpx.WriteRedirect(w, r, routepath.AppDashboard)
	default:
		h.renderWizard(w, r, http.StatusOK, result.Wizard, "")
	}
}

func (h handlers) handleStep(w http.ResponseWriter, r *http.Request) {
	sub, err := parseSubmission(r)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	ctx, userID := h.RequestContextAndUserID(r)
	result, err := h.service.update(ctx, userID, sub)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	if result.AlreadyCompleted {
		httpx.WriteRedirect(w, r, routepath.AppDashboard)
		return
	}
	h.renderWizard(w, r, http.StatusOK, result.Wizard, h.localize(w, r, result.ErrorKey))
}

func (h handlers) handleFinish(w http.ResponseWriter, r *http.Request) {
	sub, err := parseSubmission(r)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	ctx, userID := h.RequestContextAndUserID(r)
	result, err := h.service.finish(ctx, userID, sub)
	if err != nil {
		if errors.Is(err, ErrSaveFailed) {
			loc, _ := h.PageLocalizer(w, r)
			h.renderWizard(w, r, failureStatus(r, apperrors.HTTPStatus(err)), result.Wizard, webi18n.LocalizeError(loc, err))
			return
		}
		h.WriteError(w, r, err)
		return
	}
	if result.AlreadyCompleted {
		httpx.WriteRedirect(w, r, routepath.AppDashboard)
		return
	}
	if !result.Completed {
		h.renderWizard(w, r, failureStatus(r, http.StatusUnprocessableEntity), result.Wizard, h.localize(w, r, result.ErrorKey))
		return
	}
	flash.Write(w, r, flash.Success("dashboard.notice.profile_saved"), h.flashMeta)
	httpx.WriteRedirect(w, r, routepath.AppDashboard)
}

func (h handlers) renderWizard(w http.ResponseWriter, r *http.Request, status int, wizard Wizard, message string) {
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, webtemplates.T(loc, "onboarding.page_title"), status, webtemplates.OnboardingWizard(wizardView(wizard, message), loc))
}

func (h handlers) localize(w http.ResponseWriter, r *http.Request, key string) string {
	if key == "" {
		return ""
	}
	loc, _ := h.PageLocalizer(w, r)
	return webtemplates.T(loc, key)
}

func parseSubmission(r *http.Request) (submission, error) {
	if err := r.ParseForm(); err != nil {
		return submission{}, apperrors.EK(apperrors.KindInvalidInput, "error.web.message.failed_to_parse_form", "failed to parse onboarding form")
	}
	step, ok := ParseFormStep(r)
	if !ok {
		return submission{Action: ParseAction(r)}, nil
	}
	input, err := ParseStepInput(r, step)
	if err != nil {
		return submission{}, err
	}
	return submission{Step: step, Action: ParseAction(r), Input: input}, nil
}

// failureStatus keeps HTMX swaps working: htmx only swaps 2xx responses.
func failureStatus(r *http.Request, status int) int {
	if httpx.IsHTMXRequest(r) {
		return http.StatusOK
	}
	return status
}

func wizardView(wizard Wizard, message string) webtemplates.OnboardingWizardView {
	f := wizard.Form
	return webtemplates.OnboardingWizardView{
		Step:       int(wizard.Step),
		TotalSteps: TotalSteps,
		Progress:   wizard.Progress(),
		Form: webtemplates.OnboardingForm{
			Name:               f.Name,
			HouseholdSize:      f.HouseholdSize,
			ResidenceSize:      f.ResidenceSize,
			HasGarden:          f.HasGarden,
			TransportationType: f.TransportationType,
			HeatingType:        f.HeatingType,
			HasSolarPanels:     f.HasSolarPanels,
			RecyclingHabit:     f.RecyclingHabit,
		},
		CanGoBack:  wizard.CanGoBack(),
		CanAdvance: wizard.CanAdvance(),
		CanFinish:  wizard.CanFinish(),
		Error:      message,
		StepPath:   routepath.AppOnboardingStep,
		FinishPath: routepath.AppOnboardingFinish,
	}
}
