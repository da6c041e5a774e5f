package templates

import (
	"context"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/ecohome/ecohome/internal/services/profile/household"
)

const (
	// OnboardingWizardID is the DOM id every wizard fragment swaps into.
	OnboardingWizardID = "onboarding-wizard"
	// OnboardingFinishButtonID identifies the submit control on the last step.
	OnboardingFinishButtonID = "onboarding-finish"
	onboardingSavingID       = "onboarding-saving"
)

// OnboardingForm is the draft form as shown to the user.
type OnboardingForm struct {
	Name               string
	HouseholdSize      string
	ResidenceSize      household.ResidenceSize
	HasGarden          bool
	TransportationType household.TransportationType
	HeatingType        household.HeatingType
	HasSolarPanels     bool
	RecyclingHabit     household.RecyclingHabit
}

// OnboardingWizardView is the state of one wizard render.
type OnboardingWizardView struct {
	Step       int
	TotalSteps int
	Progress   int
	Form       OnboardingForm
	CanGoBack  bool
	CanAdvance bool
	CanFinish  bool
	Error      string
	StepPath   string
	FinishPath string
}

// OnboardingShell renders the pending state: only a loading indicator that
// fetches the wizard once the page loads.
func OnboardingShell(wizardPath string, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw("<section class=\"wizard wizard-pending\"")
		h.attr("id", OnboardingWizardID)
		h.attr("hx-get", wizardPath)
		h.attr("hx-trigger", "load")
		h.attr("hx-swap", "outerHTML")
		h.raw("><p class=\"loading\" role=\"status\" aria-live=\"polite\"><span class=\"spinner\" aria-hidden=\"true\"></span>")
		h.text(T(loc, "onboarding.loading"))
		h.raw("</p><noscript><a")
		h.attr("href", wizardPath)
		h.raw(">")
		h.text(T(loc, "onboarding.fallback_link"))
		h.raw("</a></noscript></section>")
	})
}

// OnboardingWizard renders the wizard for the current step.
func OnboardingWizard(view OnboardingWizardView, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		total := view.TotalSteps
		if total <= 0 {
			total = 4
		}
		h.raw("<section class=\"wizard\"")
		h.attr("id", OnboardingWizardID)
		h.intAttr("data-step", view.Step)
		h.raw("><header class=\"wizard-header\"><h1>")
		h.text(T(loc, "onboarding.heading"))
		h.raw("</h1><p class=\"wizard-step-count\">")
		h.text(T(loc, "onboarding.progress", view.Step, total))
		h.raw("</p><div class=\"progress\" role=\"progressbar\" aria-valuemin=\"0\" aria-valuemax=\"100\"")
		h.intAttr("aria-valuenow", view.Progress)
		h.raw("><div class=\"progress-bar\"")
		h.attr("style", "width: "+strconv.Itoa(view.Progress)+"%")
		h.raw("></div></div><p class=\"wizard-progress-label\">")
		h.text(T(loc, "onboarding.progress_percent", view.Progress))
		h.raw("</p></header><h2>")
		h.text(T(loc, "onboarding.step"+strconv.Itoa(view.Step)+".title"))
		h.raw("</h2>")

		if msg := strings.TrimSpace(view.Error); msg != "" {
			h.raw("<p class=\"form-error\" role=\"alert\">")
			h.text(msg)
			h.raw("</p>")
		}

		h.raw("<form method=\"post\" class=\"wizard-form\"")
		h.attr("action", view.StepPath)
		h.attr("hx-post", view.StepPath)
		h.attr("hx-trigger", "change, submit")
		h.attr("hx-target", "#"+OnboardingWizardID)
		h.attr("hx-swap", "outerHTML")
		h.raw("><input type=\"hidden\" name=\"step\"")
		h.intAttr("value", view.Step)
		h.raw(">")

		switch view.Step {
		case 1:
			renderHouseholdStep(h, view.Form, loc)
		case 2:
			renderTransportationStep(h, view.Form, loc)
		case 3:
			renderHeatingStep(h, view.Form, loc)
		case 4:
			renderRecyclingStep(h, view.Form, loc)
		}

		h.raw("<div class=\"wizard-actions\">")
		if view.CanGoBack {
			h.raw("<button type=\"submit\" name=\"action\" value=\"back\" class=\"secondary\" formnovalidate>")
			h.text(T(loc, "onboarding.action.back"))
			h.raw("</button>")
		}
		if view.Step < total {
			h.raw("<button type=\"submit\" name=\"action\" value=\"next\"")
			h.flag("disabled", !view.CanAdvance)
			h.raw(">")
			h.text(T(loc, "onboarding.action.next"))
			h.raw("</button>")
		} else {
			h.raw("<button type=\"submit\"")
			h.attr("id", OnboardingFinishButtonID)
			h.attr("formaction", view.FinishPath)
			h.attr("hx-post", view.FinishPath)
			h.attr("hx-target", "#"+OnboardingWizardID)
			h.attr("hx-swap", "outerHTML")
			h.attr("hx-disabled-elt", "this")
			h.attr("hx-indicator", "#"+onboardingSavingID)
			h.flag("disabled", !view.CanFinish)
			h.raw(">")
			h.text(T(loc, "onboarding.action.finish"))
			h.raw("</button><span class=\"htmx-indicator\"")
			h.attr("id", onboardingSavingID)
			h.raw(">")
			h.text(T(loc, "onboarding.action.saving"))
			h.raw("</span>")
		}
		h.raw("</div></form></section>")
	})
}

func renderHouseholdStep(h *htmlWriter, form OnboardingForm, loc Localizer) {
	h.raw("<label for=\"onboarding-name\">")
	h.text(T(loc, "onboarding.field.name"))
	h.raw("</label><input type=\"text\" id=\"onboarding-name\" name=\"name\" autocomplete=\"name\" required")
	h.intAttr("maxlength", household.MaxNameLength)
	h.attr("value", form.Name)
	h.raw(">")

	h.raw("<label for=\"onboarding-household-size\">")
	h.text(T(loc, "onboarding.field.household_size"))
	h.raw("</label><input type=\"number\" id=\"onboarding-household-size\" name=\"household_size\" min=\"1\" step=\"1\" inputmode=\"numeric\" required")
	h.attr("value", form.HouseholdSize)
	h.raw(">")

	h.raw("<label for=\"onboarding-residence-size\">")
	h.text(T(loc, "onboarding.field.residence_size"))
	h.raw("</label>")
	renderSelect(h, "onboarding-residence-size", "residence_size", string(form.ResidenceSize), enumValues(household.AllResidenceSizes()), "onboarding.residence.", loc)

	renderCheckbox(h, "onboarding-has-garden", "has_garden", form.HasGarden, T(loc, "onboarding.field.has_garden"))
}

func renderTransportationStep(h *htmlWriter, form OnboardingForm, loc Localizer) {
	renderRadioGroup(h, "transportation_type", T(loc, "onboarding.field.transportation_type"), string(form.TransportationType), enumValues(household.AllTransportationTypes()), "onboarding.transport.", loc)
}

func renderHeatingStep(h *htmlWriter, form OnboardingForm, loc Localizer) {
	h.raw("<label for=\"onboarding-heating-type\">")
	h.text(T(loc, "onboarding.field.heating_type"))
	h.raw("</label>")
	renderSelect(h, "onboarding-heating-type", "heating_type", string(form.HeatingType), enumValues(household.AllHeatingTypes()), "onboarding.heating.", loc)
	renderCheckbox(h, "onboarding-has-solar-panels", "has_solar_panels", form.HasSolarPanels, T(loc, "onboarding.field.has_solar_panels"))
}

func renderRecyclingStep(h *htmlWriter, form OnboardingForm, loc Localizer) {
	renderRadioGroup(h, "recycling_habit", T(loc, "onboarding.field.recycling_habit"), string(form.RecyclingHabit), enumValues(household.AllRecyclingHabits()), "onboarding.recycling.", loc)
}

func renderSelect(h *htmlWriter, id string, name string, selected string, values []string, labelPrefix string, loc Localizer) {
	h.raw("<select required")
	h.attr("id", id)
	h.attr("name", name)
	h.raw("><option value=\"\"")
	h.flag("selected", selected == "")
	h.raw(">")
	h.text(T(loc, "onboarding.field.choose"))
	h.raw("</option>")
	for _, value := range values {
		h.raw("<option")
		h.attr("value", value)
		h.flag("selected", value == selected)
		h.raw(">")
		h.text(T(loc, labelPrefix+value))
		h.raw("</option>")
	}
	h.raw("</select>")
}

func renderRadioGroup(h *htmlWriter, name string, legend string, selected string, values []string, labelPrefix string, loc Localizer) {
	h.raw("<fieldset class=\"choices\"><legend>")
	h.text(legend)
	h.raw("</legend>")
	for _, value := range values {
		id := "onboarding-" + strings.ReplaceAll(name, "_", "-") + "-" + strings.ReplaceAll(value, "_", "-")
		h.raw("<label class=\"choice\"")
		h.attr("for", id)
		h.raw("><input type=\"radio\"")
		h.attr("id", id)
		h.attr("name", name)
		h.attr("value", value)
		h.flag("checked", value == selected)
		h.raw(">")
		h.text(T(loc, labelPrefix+value))
		h.raw("</label>")
	}
	h.raw("</fieldset>")
}

func renderCheckbox(h *htmlWriter, id string, name string, checked bool, label string) {
	h.raw("<label class=\"checkbox\"")
	h.attr("for", id)
	h.raw("><input type=\"checkbox\" value=\"true\"")
	h.attr("id", id)
	h.attr("name", name)
	h.flag("checked", checked)
	h.raw(">")
	h.text(label)
	h.raw("</label>")
}

func enumValues[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		out = append(out, string(value))
	}
	return out
}
