package onboarding

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/ecohome/ecohome/internal/services/profile/household"
	profilestorage "github.com/ecohome/ecohome/internal/services/profile/storage"
	"github.com/ecohome/ecohome/internal/services/web/platform/flash"
	"github.com/ecohome/ecohome/internal/services/web/platform/requestmeta"
	"github.com/ecohome/ecohome/internal/services/web/routepath"
	webtemplates "github.com/ecohome/ecohome/internal/services/web/templates"
)

func newTestMux(userID string, profiles ProfileGateway, drafts DraftGateway) *http.ServeMux {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(profiles, drafts, nil), testBase(userID), requestmeta.SchemePolicy{}))
	return mux
}

func htmxPost(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	return req
}

func finishButtonTag(t *testing.T, body string) string {
	t.Helper()
	start := strings.Index(body, `id="`+webtemplates.OnboardingFinishButtonID+`"`)
	if start < 0 {
		t.Fatalf("finish button missing from body: %s", body)
	}
	open := strings.LastIndex(body[:start], "<button")
	end := strings.Index(body[start:], ">")
	return body[open : start+end+1]
}

func TestShellRendersLoadingIndicatorOnly(t *testing.T) {
	t.Parallel()

	mux := newTestMux("user-1", &fakeProfileGateway{completed: true}, newFakeDraftGateway())
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.AppOnboarding, nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `hx-get="`+routepath.AppOnboardingWizard+`"`) || !strings.Contains(body, `hx-trigger="load"`) {
		t.Fatalf("shell does not load the wizard: %s", body)
	}
	if !strings.Contains(body, "spinner") {
		t.Fatalf("shell missing loading indicator: %s", body)
	}
	if strings.Contains(body, `class="wizard-form"`) {
		t.Fatalf("shell rendered wizard content: %s", body)
	}
}

func TestWizardUnauthenticatedRedirectsToLogin(t *testing.T) {
	t.Parallel()

	profiles := &fakeProfileGateway{}
	mux := newTestMux("", profiles, newFakeDraftGateway())

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.AppOnboardingWizard, nil))
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != routepath.Login {
		t.Fatalf("response = %d %q, want 302 to login", rr.Code, rr.Header().Get("Location"))
	}
	if strings.Contains(rr.Body.String(), webtemplates.OnboardingWizardID) {
		t.Fatalf("wizard content rendered: %s", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.AppOnboarding, nil))
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != routepath.Login {
		t.Fatalf("shell response = %d %q, want 302 to login", rr.Code, rr.Header().Get("Location"))
	}
	if profiles.statusCalls != 0 {
		t.Fatalf("status lookups = %d, want 0", profiles.statusCalls)
	}
}

func TestWizardCompletedRedirectsToDashboard(t *testing.T) {
	t.Parallel()

	mux := newTestMux("user-1", &fakeProfileGateway{completed: true}, newFakeDraftGateway())
	req := httptest.NewRequest(http.MethodGet, routepath.AppOnboardingWizard, nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if got := rr.Header().Get("HX-Redirect"); got != routepath.AppDashboard {
		t.Fatalf("HX-Redirect = %q, want %q", got, routepath.AppDashboard)
	}
	if strings.Contains(rr.Body.String(), `class="wizard-form"`) {
		t.Fatalf("wizard content rendered: %s", rr.Body.String())
	}
}

func TestWizardLookupFailureRedirectsToLogin(t *testing.T) {
	t.Parallel()

	mux := newTestMux("user-1", &fakeProfileGateway{statusErr: errors.New("db down")}, newFakeDraftGateway())
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.AppOnboardingWizard, nil))
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != routepath.Login {
		t.Fatalf("response = %d %q, want 302 to login", rr.Code, rr.Header().Get("Location"))
	}
}

func TestWizardRendersFirstStepForNewUser(t *testing.T) {
	t.Parallel()

	mux := newTestMux("user-1", &fakeProfileGateway{statusErr: profilestorage.ErrNotFound}, newFakeDraftGateway())
	req := httptest.NewRequest(http.MethodGet, routepath.AppOnboardingWizard, nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{`data-step="1"`, `aria-valuenow="25"`, `name="name"`, `value="next" disabled`} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q: %s", want, body)
		}
	}
	if strings.Contains(body, `value="back"`) {
		t.Fatalf("back rendered on first step: %s", body)
	}
}

func TestWizardCancelledRequestWritesNothing(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	drafts := newFakeDraftGateway()
	mux := newTestMux("user-1", &fakeProfileGateway{onStatus: func(context.Context) { cancel() }}, drafts)
	req := httptest.NewRequest(http.MethodGet, routepath.AppOnboardingWizard, nil).WithContext(ctx)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Body.Len() != 0 || rr.Header().Get("Location") != "" || rr.Header().Get("HX-Redirect") != "" {
		t.Fatalf("abandoned guard wrote a response: %d %v %q", rr.Code, rr.Header(), rr.Body.String())
	}
	if _, ok := drafts.draft("user-1"); ok {
		t.Fatal("abandoned guard created a draft")
	}
}

func TestStepEditEnablesNext(t *testing.T) {
	t.Parallel()

	drafts := newFakeDraftGateway()
	mux := newTestMux("user-1", &fakeProfileGateway{}, drafts)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, htmxPost(routepath.AppOnboardingStep, url.Values{
		"step":           {"1"},
		"name":           {"Ana"},
		"household_size": {"3"},
		"residence_size": {"medium"},
	}))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if strings.Contains(body, `value="next" disabled`) || !strings.Contains(body, `value="next"`) {
		t.Fatalf("next not enabled: %s", body)
	}
	if strings.Contains(body, "<html") {
		t.Fatalf("htmx request received full document: %s", body)
	}
}

func TestStepNextAdvancesProgress(t *testing.T) {
	t.Parallel()

	drafts := newFakeDraftGateway()
	drafts.drafts["user-1"] = Wizard{Step: StepTransportation, Form: completeWizard().Form}
	mux := newTestMux("user-1", &fakeProfileGateway{}, drafts)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, htmxPost(routepath.AppOnboardingStep, url.Values{
		"step":                {"2"},
		"action":              {"next"},
		"transportation_type": {"bicycle"},
	}))

	body := rr.Body.String()
	if !strings.Contains(body, `data-step="3"`) || !strings.Contains(body, `aria-valuenow="75"`) {
		t.Fatalf("wizard did not advance: %s", body)
	}
	if !strings.Contains(body, `value="back"`) {
		t.Fatalf("back missing on step 3: %s", body)
	}
}

func TestFinishSubmitsAndRedirectsAfterWrite(t *testing.T) {
	t.Parallel()

	drafts := newFakeDraftGateway()
	drafts.drafts["user-1"] = Wizard{Step: StepRecycling, Form: FormData{
		Name:               "Ana",
		HouseholdSize:      "3",
		ResidenceSize:      household.ResidenceMedium,
		TransportationType: household.TransportBicycle,
		HeatingType:        household.HeatingSolar,
	}}
	rr := httptest.NewRecorder()
	redirectedBeforeWrite := false
	profiles := &fakeProfileGateway{onSave: func(household.Profile) {
		redirectedBeforeWrite = rr.Header().Get("HX-Redirect") != ""
	}}
	mux := newTestMux("user-1", profiles, drafts)

	mux.ServeHTTP(rr, htmxPost(routepath.AppOnboardingFinish, url.Values{
		"step":            {"4"},
		"recycling_habit": {"always"},
	}))

	if redirectedBeforeWrite {
		t.Fatal("redirect issued before the profile write")
	}
	if got := rr.Header().Get("HX-Redirect"); got != routepath.AppDashboard {
		t.Fatalf("HX-Redirect = %q, want %q", got, routepath.AppDashboard)
	}
	if len(profiles.saved) != 1 {
		t.Fatalf("saved profiles = %d, want 1", len(profiles.saved))
	}
	saved := profiles.saved[0]
	if saved.Name != "Ana" || saved.HouseholdSize != 3 || !saved.OnboardingCompleted || !saved.HasSeenIntro {
		t.Fatalf("saved = %+v", saved)
	}
	if saved.RecyclingHabit != household.RecyclingAlways || saved.HeatingType != household.HeatingSolar {
		t.Fatalf("saved answers = %+v", saved)
	}
	cookies := rr.Result().Cookies()
	foundFlash := false
	for _, cookie := range cookies {
		if cookie.Name == flash.CookieName {
			foundFlash = true
		}
	}
	if !foundFlash {
		t.Fatal("expected profile saved notice cookie")
	}
}

func TestFinishFailureReEnablesFinish(t *testing.T) {
	t.Parallel()

	drafts := newFakeDraftGateway()
	drafts.drafts["user-1"] = completeWizard()
	mux := newTestMux("user-1", &fakeProfileGateway{saveErr: errors.New("write timeout")}, drafts)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, htmxPost(routepath.AppOnboardingFinish, url.Values{
		"step":            {"4"},
		"recycling_habit": {"always"},
	}))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for htmx swap", rr.Code)
	}
	if got := rr.Header().Get("HX-Redirect"); got != "" {
		t.Fatalf("HX-Redirect = %q, want none", got)
	}
	body := rr.Body.String()
	tag := finishButtonTag(t, body)
	if strings.Contains(tag, " disabled") {
		t.Fatalf("finish button disabled after failure: %s", tag)
	}
	if strings.Contains(body, "htmx-request") {
		t.Fatalf("finish rendered in loading state: %s", body)
	}
	if !strings.Contains(body, `role="alert"`) {
		t.Fatalf("missing failure message: %s", body)
	}
}

func TestFinishFailureWithoutHTMXReturnsUnavailable(t *testing.T) {
	t.Parallel()

	drafts := newFakeDraftGateway()
	drafts.drafts["user-1"] = completeWizard()
	mux := newTestMux("user-1", &fakeProfileGateway{saveErr: errors.New("write timeout")}, drafts)
	req := httptest.NewRequest(http.MethodPost, routepath.AppOnboardingFinish, strings.NewReader("step=4&recycling_habit=always"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
	if rr.Header().Get("Location") != "" {
		t.Fatalf("Location = %q, want none", rr.Header().Get("Location"))
	}
}

func TestFinishDisabledUntilLastStepValid(t *testing.T) {
	t.Parallel()

	drafts := newFakeDraftGateway()
	w := completeWizard()
	w.Form.RecyclingHabit = ""
	drafts.drafts["user-1"] = w
	mux := newTestMux("user-1", &fakeProfileGateway{}, drafts)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, htmxPost(routepath.AppOnboardingStep, url.Values{"step": {"4"}}))

	if tag := finishButtonTag(t, rr.Body.String()); !strings.Contains(tag, " disabled") {
		t.Fatalf("finish enabled without recycling habit: %s", tag)
	}
}

func TestWizardReloadDiscardsEarlierAnswers(t *testing.T) {
	t.Parallel()

	drafts := newFakeDraftGateway()
	drafts.drafts["user-1"] = Wizard{Step: StepHeating, Form: FormData{Name: "Old"}}
	mux := newTestMux("user-1", &fakeProfileGateway{}, drafts)
	req := httptest.NewRequest(http.MethodGet, routepath.AppOnboardingWizard, nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	body := rr.Body.String()
	if !strings.Contains(body, `data-step="1"`) || strings.Contains(body, `value="Old"`) {
		t.Fatalf("reload resumed an old draft: %s", body)
	}
}

func TestFinishFromEarlierStepDoesNotSave(t *testing.T) {
	t.Parallel()

	drafts := newFakeDraftGateway()
	w := completeWizard()
	w.Step = StepTransportation
	drafts.drafts["user-1"] = w
	profiles := &fakeProfileGateway{}
	mux := newTestMux("user-1", profiles, drafts)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, htmxPost(routepath.AppOnboardingFinish, url.Values{
		"step":                {"2"},
		"transportation_type": {"bicycle"},
	}))

	if got := rr.Header().Get("HX-Redirect"); got != "" {
		t.Fatalf("HX-Redirect = %q, want none", got)
	}
	if len(profiles.saved) != 0 {
		t.Fatalf("saved profiles = %d, want 0", len(profiles.saved))
	}
	if !strings.Contains(rr.Body.String(), `data-step="2"`) {
		t.Fatalf("wizard left step 2: %s", rr.Body.String())
	}
}

func TestCompletedUserPostsRedirectToDashboard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		path   string
		values url.Values
	}{
		{name: "step", path: routepath.AppOnboardingStep, values: url.Values{"step": {"1"}, "name": {"Mallory"}}},
		{name: "finish", path: routepath.AppOnboardingFinish, values: url.Values{"step": {"4"}, "recycling_habit": {"never"}}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			drafts := newFakeDraftGateway()
			drafts.drafts["user-1"] = completeWizard()
			profiles := &fakeProfileGateway{completed: true}
			mux := newTestMux("user-1", profiles, drafts)
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, htmxPost(tc.path, tc.values))

			if got := rr.Header().Get("HX-Redirect"); got != routepath.AppDashboard {
				t.Fatalf("HX-Redirect = %q, want %q", got, routepath.AppDashboard)
			}
			if len(profiles.saved) != 0 {
				t.Fatalf("saved profiles = %d, want 0", len(profiles.saved))
			}
			for _, cookie := range rr.Result().Cookies() {
				if cookie.Name == flash.CookieName {
					t.Fatal("saved notice set for a completed user")
				}
			}
		})
	}
}
