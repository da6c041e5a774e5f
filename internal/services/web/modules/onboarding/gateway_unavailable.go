package onboarding

import (
	"context"

	"github.com/ecohome/ecohome/internal/services/profile/household"
	apperrors "github.com/ecohome/ecohome/internal/services/web/platform/errors"
)

type unavailableProfileGateway struct{}

func (unavailableProfileGateway) OnboardingStatus(context.Context, string) (bool, error) {
	return false, apperrors.EK(apperrors.KindUnavailable, "error.web.message.profile_store_unavailable", "profile store is not configured")
}

func (unavailableProfileGateway) SaveProfile(context.Context, household.Profile) error {
	return apperrors.EK(apperrors.KindUnavailable, "error.web.message.profile_store_unavailable", "profile store is not configured")
}

type unavailableDraftGateway struct{}

func (unavailableDraftGateway) LoadDraft(context.Context, string) (Wizard, bool, error) {
	return Wizard{}, false, apperrors.EK(apperrors.KindUnavailable, "error.web.message.draft_store_unavailable", "draft store is not configured")
}

func (unavailableDraftGateway) SaveDraft(context.Context, string, Wizard) error {
	return apperrors.EK(apperrors.KindUnavailable, "error.web.message.draft_store_unavailable", "draft store is not configured")
}

func (unavailableDraftGateway) DeleteDraft(context.Context, string) error {
	return apperrors.EK(apperrors.KindUnavailable, "error.web.message.draft_store_unavailable", "draft store is not configured")
}
