package dashboard

import (
	"context"

	"github.com/ecohome/ecohome/internal/services/profile/household"
	apperrors "github.com/ecohome/ecohome/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func (unavailableGateway) LoadProfile(context.Context, string) (household.Profile, error) {
	return household.Profile{}, apperrors.EK(apperrors.KindUnavailable, "error.web.message.profile_store_unavailable", "profile store is not configured")
}
