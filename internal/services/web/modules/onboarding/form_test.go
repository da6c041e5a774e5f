package onboarding

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/ecohome/ecohome/internal/services/profile/household"
)

func formRequest(t *testing.T, values url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/app/onboarding/step", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if err := req.ParseForm(); err != nil {
		t.Fatalf("parse form: %v", err)
	}
	return req
}

func TestParseStepInputHousehold(t *testing.T) {
	t.Parallel()

	req := formRequest(t, url.Values{
		"name":           {" Ana "},
		"household_size": {" 3 "},
		"residence_size": {"Medium"},
		"has_garden":     {"true"},
	})
	input, err := ParseStepInput(req, StepHousehold)
	if err != nil {
		t.Fatalf("ParseStepInput() error = %v", err)
	}
	if input.Household == nil || input.Transportation != nil || input.Heating != nil || input.Recycling != nil {
		t.Fatalf("ParseStepInput() variant = %+v", input)
	}
	want := HouseholdInput{Name: " Ana ", HouseholdSize: "3", ResidenceSize: household.ResidenceMedium, HasGarden: true}
	if *input.Household != want {
		t.Fatalf("Household = %+v, want %+v", *input.Household, want)
	}
}

func TestParseStepInputClampsName(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("é", household.MaxNameLength+5)
	req := formRequest(t, url.Values{"name": {long}, "household_size": {"2"}, "residence_size": {"small"}})
	input, err := ParseStepInput(req, StepHousehold)
	if err != nil {
		t.Fatalf("ParseStepInput() error = %v", err)
	}
	if got := input.Household.Name; got != strings.Repeat("é", household.MaxNameLength) {
		t.Fatalf("Name has %d runes, want %d", len([]rune(got)), household.MaxNameLength)
	}
}

func TestParseStepInputKeepsIncompleteValues(t *testing.T) {
	t.Parallel()

	req := formRequest(t, url.Values{"transportation_type": {"rocket"}})
	input, err := ParseStepInput(req, StepTransportation)
	if err != nil {
		t.Fatalf("ParseStepInput() error = %v", err)
	}
	if input.Transportation == nil || input.Transportation.TransportationType != "" {
		t.Fatalf("Transportation = %+v", input.Transportation)
	}
}

func TestParseStepInputVariants(t *testing.T) {
	t.Parallel()

	req := formRequest(t, url.Values{
		"heating_type":     {"solar"},
		"has_solar_panels": {"on"},
		"recycling_habit":  {"always"},
	})
	heating, err := ParseStepInput(req, StepHeating)
	if err != nil || heating.Heating == nil {
		t.Fatalf("heating input = %+v, err = %v", heating, err)
	}
	if heating.Heating.HeatingType != household.HeatingSolar || !heating.Heating.HasSolarPanels {
		t.Fatalf("Heating = %+v", *heating.Heating)
	}
	recycling, err := ParseStepInput(req, StepRecycling)
	if err != nil || recycling.Recycling == nil || recycling.Recycling.RecyclingHabit != household.RecyclingAlways {
		t.Fatalf("recycling input = %+v, err = %v", recycling, err)
	}
	if _, err := ParseStepInput(req, Step(7)); err == nil {
		t.Fatal("expected unknown step error")
	}
}

func TestApplyOnlyTouchesOwnStep(t *testing.T) {
	t.Parallel()

	w := completeWizard()
	w = w.Apply(StepInput{Transportation: &TransportationInput{TransportationType: household.TransportWalk}})
	if w.Form.TransportationType != household.TransportWalk {
		t.Fatalf("TransportationType = %q", w.Form.TransportationType)
	}
	if w.Form.HeatingType != household.HeatingSolar || w.Form.Name != "  Ana  " {
		t.Fatalf("other answers changed: %+v", w.Form)
	}
}

func TestParseActionAndStep(t *testing.T) {
	t.Parallel()

	tests := []struct {
		values url.Values
		action Action
		step   Step
		ok     bool
	}{
		{values: url.Values{"action": {"next"}, "step": {"2"}}, action: ActionNext, step: StepTransportation, ok: true},
		{values: url.Values{"action": {"BACK"}, "step": {"4"}}, action: ActionBack, step: StepRecycling, ok: true},
		{values: url.Values{"step": {"1"}}, action: ActionUpdate, step: StepHousehold, ok: true},
		{values: url.Values{"action": {"jump"}, "step": {"0"}}, action: ActionUpdate},
	}
	for _, tc := range tests {
		req := formRequest(t, tc.values)
		if got := ParseAction(req); got != tc.action {
			t.Fatalf("ParseAction(%v) = %q, want %q", tc.values, got, tc.action)
		}
		step, ok := ParseFormStep(req)
		if ok != tc.ok || step != tc.step {
			t.Fatalf("ParseFormStep(%v) = (%d, %v), want (%d, %v)", tc.values, step, ok, tc.step, tc.ok)
		}
	}
}
