package onboarding

import (
	"math"
	"strconv"
	"strings"

	"github.com/ecohome/ecohome/internal/services/profile/household"
)

// TotalSteps is the number of wizard steps.
const TotalSteps = 4

// Step identifies one wizard step. Valid steps are 1 through TotalSteps.
type Step int

const (
	StepHousehold      Step = 1
	StepTransportation Step = 2
	StepHeating        Step = 3
	StepRecycling      Step = 4
)

// Valid reports whether s is inside the wizard range.
func (s Step) Valid() bool {
	return s >= StepHousehold && s <= StepRecycling
}

// FormData holds every answer collected by the wizard.
type FormData struct {
	Name               string                       `json:"name"`
	HouseholdSize      string                       `json:"household_size"`
	ResidenceSize      household.ResidenceSize      `json:"residence_size"`
	HasGarden          bool                         `json:"has_garden"`
	TransportationType household.TransportationType `json:"transportation_type"`
	HeatingType        household.HeatingType        `json:"heating_type"`
	HasSolarPanels     bool                         `json:"has_solar_panels"`
	RecyclingHabit     household.RecyclingHabit     `json:"recycling_habit"`
}

// Wizard is the onboarding state machine: the current step and the answers so far.
type Wizard struct {
	Step Step
	Form FormData
}

// NewWizard returns the initial wizard state.
func NewWizard() Wizard {
	return Wizard{Step: StepHousehold}
}

// normalized clamps a stored step into range.
func (w Wizard) normalized() Wizard {
	switch {
	case w.Step < StepHousehold:
		w.Step = StepHousehold
	case w.Step > StepRecycling:
		w.Step = StepRecycling
	}
	return w
}

// StepValid reports whether the required fields of step are set.
func (w Wizard) StepValid(step Step) bool {
	f := w.Form
	switch step {
	case StepHousehold:
		_, sizeOK := parseHouseholdSize(f.HouseholdSize)
		return nameValid(f.Name) && sizeOK && f.ResidenceSize.Valid()
	case StepTransportation:
		return f.TransportationType.Valid()
	case StepHeating:
		return f.HeatingType.Valid()
	case StepRecycling:
		return f.RecyclingHabit.Valid()
	default:
		return false
	}
}

// CanAdvance reports whether Next is enabled.
func (w Wizard) CanAdvance() bool {
	return w.Step < StepRecycling && w.StepValid(w.Step)
}

// CanGoBack reports whether Back is available.
func (w Wizard) CanGoBack() bool {
	return w.Step > StepHousehold
}

// CanFinish reports whether the final step may be submitted.
func (w Wizard) CanFinish() bool {
	return w.Step == StepRecycling && w.StepValid(StepRecycling)
}

// Next moves forward one step when the current step is valid.
func (w Wizard) Next() (Wizard, bool) {
	if !w.CanAdvance() {
		return w, false
	}
	w.Step++
	return w, true
}

// Back moves back one step.
func (w Wizard) Back() (Wizard, bool) {
	if !w.CanGoBack() {
		return w, false
	}
	w.Step--
	return w, true
}

// Progress returns the completion percentage for the current step.
func (w Wizard) Progress() int {
	return int(math.Round(float64(w.Step) / TotalSteps * 100))
}

// FirstInvalidStep returns the earliest step whose required fields are unset.
func (w Wizard) FirstInvalidStep() (Step, bool) {
	for step := StepHousehold; step <= StepRecycling; step++ {
		if !w.StepValid(step) {
			return step, true
		}
	}
	return 0, false
}

// Profile builds the completed profile written on submission.
func (w Wizard) Profile(userID string) (household.Profile, error) {
	size, _ := parseHouseholdSize(w.Form.HouseholdSize)
	return household.Normalize(household.Profile{
		UserID:              userID,
		Name:                strings.TrimSpace(w.Form.Name),
		HouseholdSize:       size,
		ResidenceSize:       w.Form.ResidenceSize,
		HasGarden:           w.Form.HasGarden,
		TransportationType:  w.Form.TransportationType,
		HeatingType:         w.Form.HeatingType,
		HasSolarPanels:      w.Form.HasSolarPanels,
		RecyclingHabit:      w.Form.RecyclingHabit,
		OnboardingCompleted: true,
		HasSeenIntro:        true,
	})
}

// nameValid reports whether a name was entered. Length is bounded when the
// form is parsed.
func nameValid(name string) bool {
	return strings.TrimSpace(name) != ""
}

func parseHouseholdSize(raw string) (int, bool) {
	size, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || size <= 0 || size > household.MaxHouseholdSize {
		return 0, false
	}
	return size, true
}
