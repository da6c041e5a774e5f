package onboarding

import (
	"context"
	"net/http"
	"sync"

	"github.com/ecohome/ecohome/internal/services/profile/household"
	module "github.com/ecohome/ecohome/internal/services/web/module"
	"github.com/ecohome/ecohome/internal/services/web/platform/modulehandler"
)

// fakeProfileGateway implements ProfileGateway with configurable results and
// call recording.
type fakeProfileGateway struct {
	mu        sync.Mutex
	completed bool
	statusErr error
	saveErr   error
	onStatus  func(context.Context)
	onSave    func(household.Profile)

	statusCalls int
	saved       []household.Profile
}

func (f *fakeProfileGateway) OnboardingStatus(ctx context.Context, _ string) (bool, error) {
	f.mu.Lock()
	f.statusCalls++
	hook := f.onStatus
	f.mu.Unlock()
	if hook != nil {
		hook(ctx)
	}
	return f.completed, f.statusErr
}

func (f *fakeProfileGateway) SaveProfile(_ context.Context, profile household.Profile) error {
	if f.onSave != nil {
		f.onSave(profile)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, profile)
	return nil
}

// fakeDraftGateway keeps drafts in memory.
type fakeDraftGateway struct {
	mu      sync.Mutex
	drafts  map[string]Wizard
	loadErr error
	saveErr error

	loads   int
	deletes int
}

func newFakeDraftGateway() *fakeDraftGateway {
	return &fakeDraftGateway{drafts: map[string]Wizard{}}
}

func (f *fakeDraftGateway) LoadDraft(_ context.Context, userID string) (Wizard, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.loadErr != nil {
		return Wizard{}, false, f.loadErr
	}
	wizard, ok := f.drafts[userID]
	return wizard, ok, nil
}

func (f *fakeDraftGateway) SaveDraft(_ context.Context, userID string, wizard Wizard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.drafts[userID] = wizard
	return nil
}

func (f *fakeDraftGateway) DeleteDraft(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	delete(f.drafts, userID)
	return nil
}

func (f *fakeDraftGateway) draft(userID string) (Wizard, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wizard, ok := f.drafts[userID]
	return wizard, ok
}

func testBase(userID string) modulehandler.Base {
	return modulehandler.NewBase(module.Dependencies{
		ResolveUserID:   func(*http.Request) string { return userID },
		ResolveLanguage: func(*http.Request) string { return "en-US" },
		ResolveViewer: func(*http.Request) module.Viewer {
			return module.Viewer{UserID: userID, DisplayName: "Ana"}
		},
	})
}

// completeWizard returns a wizard on the last step with every answer set.
func completeWizard() Wizard {
	return Wizard{
		Step: StepRecycling,
		Form: FormData{
			Name:               "  Ana  ",
			HouseholdSize:      "3",
			ResidenceSize:      household.ResidenceMedium,
			TransportationType: household.TransportBicycle,
			HeatingType:        household.HeatingSolar,
			HasSolarPanels:     true,
			RecyclingHabit:     household.RecyclingAlways,
		},
	}
}
