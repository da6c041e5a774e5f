package onboarding

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ecohome/ecohome/internal/services/profile/household"
	apperrors "github.com/ecohome/ecohome/internal/services/web/platform/errors"
)

// Action is the wizard control that submitted the step form.
type Action string

const (
	ActionUpdate Action = "update"
	ActionNext   Action = "next"
	ActionBack   Action = "back"
)

// StepInput carries the fields of exactly one wizard step.
type StepInput struct {
	Household      *HouseholdInput
	Transportation *TransportationInput
	Heating        *HeatingInput
	Recycling      *RecyclingInput
}

// HouseholdInput holds step 1 fields.
type HouseholdInput struct {
	Name          string
	HouseholdSize string
	ResidenceSize household.ResidenceSize
	HasGarden     bool
}

// TransportationInput holds step 2 fields.
type TransportationInput struct {
	TransportationType household.TransportationType
}

// HeatingInput holds step 3 fields.
type HeatingInput struct {
	HeatingType    household.HeatingType
	HasSolarPanels bool
}

// RecyclingInput holds step 4 fields.
type RecyclingInput struct {
	RecyclingHabit household.RecyclingHabit
}

// ParseAction reads the submitted control; an absent value is a field edit.
func ParseAction(r *http.Request) Action {
	switch Action(strings.ToLower(strings.TrimSpace(r.FormValue("action")))) {
	case ActionNext:
		return ActionNext
	case ActionBack:
		return ActionBack
	default:
		return ActionUpdate
	}
}

// ParseFormStep reads the step the form was rendered for.
func ParseFormStep(r *http.Request) (Step, bool) {
	value, err := strconv.Atoi(strings.TrimSpace(r.FormValue("step")))
	if err != nil || !Step(value).Valid() {
		return 0, false
	}
	return Step(value), true
}

// ParseStepInput parses the form fields of step. Incomplete input is kept;
// validity is evaluated by the wizard.
func ParseStepInput(r *http.Request, step Step) (StepInput, error) {
	switch step {
	case StepHousehold:
		residence, _ := household.ParseResidenceSize(r.FormValue("residence_size"))
		return StepInput{Household: &HouseholdInput{
			Name:          clampRunes(r.FormValue("name"), household.MaxNameLength),
			HouseholdSize: strings.TrimSpace(r.FormValue("household_size")),
			ResidenceSize: residence,
			HasGarden:     parseCheckbox(r.FormValue("has_garden")),
		}}, nil
	case StepTransportation:
		transport, _ := household.ParseTransportationType(r.FormValue("transportation_type"))
		return StepInput{Transportation: &TransportationInput{TransportationType: transport}}, nil
	case StepHeating:
		heating, _ := household.ParseHeatingType(r.FormValue("heating_type"))
		return StepInput{Heating: &HeatingInput{
			HeatingType:    heating,
			HasSolarPanels: parseCheckbox(r.FormValue("has_solar_panels")),
		}}, nil
	case StepRecycling:
		recycling, _ := household.ParseRecyclingHabit(r.FormValue("recycling_habit"))
		return StepInput{Recycling: &RecyclingInput{RecyclingHabit: recycling}}, nil
	default:
		return StepInput{}, apperrors.EK(apperrors.KindInvalidInput, "error.web.message.failed_to_parse_form", "unknown onboarding step "+strconv.Itoa(int(step)))
	}
}

// Apply merges one step's input into the wizard answers.
func (w Wizard) Apply(input StepInput) Wizard {
	switch {
	case input.Household != nil:
		w.Form.Name = input.Household.Name
		w.Form.HouseholdSize = input.Household.HouseholdSize
		w.Form.ResidenceSize = input.Household.ResidenceSize
		w.Form.HasGarden = input.Household.HasGarden
	case input.Transportation != nil:
		w.Form.TransportationType = input.Transportation.TransportationType
	case input.Heating != nil:
		w.Form.HeatingType = input.Heating.HeatingType
		w.Form.HasSolarPanels = input.Heating.HasSolarPanels
	case input.Recycling != nil:
		w.Form.RecyclingHabit = input.Recycling.RecyclingHabit
	}
	return w
}

// clampRunes cuts value to at most limit runes, like the input's maxlength.
func clampRunes(value string, limit int) string {
	count := 0
	for i := range value {
		if count == limit {
			return value[:i]
		}
		count++
	}
	return value
}

func parseCheckbox(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "on", "1", "yes":
		return true
	default:
		return false
	}
}
