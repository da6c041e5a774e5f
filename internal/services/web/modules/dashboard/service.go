package dashboard

import (
	"context"
	"errors"
	"strings"

	"github.com/ecohome/ecohome/internal/services/profile/household"
	profilestorage "github.com/ecohome/ecohome/internal/services/profile/storage"
	apperrors "github.com/ecohome/ecohome/internal/services/web/platform/errors"
)

// ProfileGateway loads the household profile for one user.
type ProfileGateway interface {
	LoadProfile(ctx context.Context, userID string) (household.Profile, error)
}

// NewStoreGateway adapts a profile store to the dashboard gateway.
func NewStoreGateway(store profilestorage.ProfileStore) ProfileGateway {
	if store == nil {
		return unavailableGateway{}
	}
	return storeGateway{store: store}
}

type storeGateway struct {
	store profilestorage.ProfileStore
}

func (g storeGateway) LoadProfile(ctx context.Context, userID string) (household.Profile, error) {
	return g.store.GetProfile(ctx, userID)
}

// dashboardState is the service decision for one dashboard request.
type dashboardState struct {
	Profile         household.Profile
	NeedsOnboarding bool
}

type service struct {
	gateway ProfileGateway
}

func newService(gateway ProfileGateway) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway}
}

func (s service) loadDashboard(ctx context.Context, userID string) (dashboardState, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return dashboardState{}, apperrors.EK(apperrors.KindUnauthorized, "error.web.message.user_id_is_required", "user id is required")
	}
	profile, err := s.gateway.LoadProfile(ctx, userID)
	if errors.Is(err, profilestorage.ErrNotFound) {
		return dashboardState{NeedsOnboarding: true}, nil
	}
	if err != nil {
		return dashboardState{}, err
	}
	if !profile.OnboardingCompleted {
		return dashboardState{NeedsOnboarding: true}, nil
	}
	return dashboardState{Profile: profile}, nil
}
