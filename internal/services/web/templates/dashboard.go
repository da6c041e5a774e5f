package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
	"github.com/ecohome/ecohome/internal/services/profile/household"
)

// DashboardView is the saved household summary.
type DashboardView struct {
	Profile household.Profile
}

// DashboardPage renders the household summary.
func DashboardPage(view DashboardView, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		p := view.Profile
		h.raw("<section class=\"dashboard\"><h1>")
		h.text(T(loc, "dashboard.greeting", p.Name))
		h.raw("</h1><h2>")
		h.text(T(loc, "dashboard.heading"))
		h.raw("</h2><dl class=\"profile-summary\">")
		term := func(labelKey string, value string) {
			h.raw("<dt>")
			h.text(T(loc, labelKey))
			h.raw("</dt><dd>")
			h.text(value)
			h.raw("</dd>")
		}
		yesNo := func(value bool) string {
			if value {
				return T(loc, "dashboard.yes")
			}
			return T(loc, "dashboard.no")
		}
		term("onboarding.field.household_size", strconv.Itoa(p.HouseholdSize))
		term("onboarding.field.residence_size", T(loc, "onboarding.residence."+string(p.ResidenceSize)))
		term("onboarding.field.has_garden", yesNo(p.HasGarden))
		term("onboarding.field.transportation_type", T(loc, "onboarding.transport."+string(p.TransportationType)))
		term("onboarding.field.heating_type", T(loc, "onboarding.heating."+string(p.HeatingType)))
		term("onboarding.field.has_solar_panels", yesNo(p.HasSolarPanels))
		term("onboarding.field.recycling_habit", T(loc, "onboarding.recycling."+string(p.RecyclingHabit)))
		h.raw("</dl>")
		if !p.UpdatedAt.IsZero() {
			h.raw("<p class=\"muted\">")
			h.text(T(loc, "dashboard.member_since", p.UpdatedAt.Format("2006-01-02")))
			h.raw("</p>")
		}
		h.raw("</section>")
	})
}
