package dashboard

import (
	"context"
	"net/http"

	"github.com/ecohome/ecohome/internal/services/profile/household"
	module "github.com/ecohome/ecohome/internal/services/web/module"
	"github.com/ecohome/ecohome/internal/services/web/platform/modulehandler"
)

// fakeGateway implements ProfileGateway for tests with configurable return
// values and call tracking.
type fakeGateway struct {
	profile household.Profile
	err     error
	calls   int
}

func (f *fakeGateway) LoadProfile(context.Context, string) (household.Profile, error) {
	f.calls++
	if f.err != nil {
		return household.Profile{}, f.err
	}
	return f.profile, nil
}

func completedProfile() household.Profile {
	return household.Profile{
		UserID:              "user-1",
		Name:                "Ana",
		HouseholdSize:       3,
		ResidenceSize:       household.ResidenceMedium,
		TransportationType:  household.TransportBicycle,
		HeatingType:         household.HeatingSolar,
		HasSolarPanels:      true,
		RecyclingHabit:      household.RecyclingAlways,
		OnboardingCompleted: true,
		HasSeenIntro:        true,
	}
}

func testBase(userID string) modulehandler.Base {
	return modulehandler.NewBase(module.Dependencies{
		ResolveUserID:   func(*http.Request) string { return userID },
		ResolveLanguage: func(*http.Request) string { return "en-US" },
	})
}
