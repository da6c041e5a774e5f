// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	Root                = "/"
	Login               = "/login"
	Logout              = "/logout"
	AuthCallback        = "/auth/callback"
	AuthPrefix          = "/auth/"
	Health              = "/up"
	StaticPrefix        = "/static/"
	AppPrefix           = "/app/"
	AppDashboard        = "/app/dashboard"
	DashboardPrefix     = "/app/dashboard/"
	AppOnboarding       = "/app/onboarding"
	OnboardingPrefix    = "/app/onboarding/"
	AppOnboardingWizard = OnboardingPrefix + "wizard"
	AppOnboardingStep   = OnboardingPrefix + "step"
	AppOnboardingFinish = OnboardingPrefix + "finish"
	CallbackTokenParam  = "token"
)

// Name identifies a navigable route independent of its path.
type Name string

const (
	RouteRoot             Name = "root"
	RouteLogin            Name = "login"
	RouteLogout           Name = "logout"
	RouteAuthCallback     Name = "auth_callback"
	RouteHealth           Name = "health"
	RouteDashboard        Name = "dashboard"
	RouteOnboarding       Name = "onboarding"
	RouteOnboardingWizard Name = "onboarding_wizard"
	RouteOnboardingStep   Name = "onboarding_step"
	RouteOnboardingFinish Name = "onboarding_finish"
)

var named = map[Name]string{
	RouteRoot:             Root,
	RouteLogin:            Login,
	RouteLogout:           Logout,
	RouteAuthCallback:     AuthCallback,
	RouteHealth:           Health,
	RouteDashboard:        AppDashboard,
	RouteOnboarding:       AppOnboarding,
	RouteOnboardingWizard: AppOnboardingWizard,
	RouteOnboardingStep:   AppOnboardingStep,
	RouteOnboardingFinish: AppOnboardingFinish,
}

// Resolve returns the path for a named route.
func Resolve(name Name) (string, bool) {
	path, ok := named[Name(strings.TrimSpace(string(name)))]
	return path, ok
}

// MustResolve returns the path for a named route and panics on unknown names.
func MustResolve(name Name) string {
	path, ok := Resolve(name)
	if !ok {
		panic(fmt.Sprintf("routepath: unknown route %q", name))
	}
	return path
}

// WithQuery returns path with key set to value in its query string.
func WithQuery(path string, key string, value string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = Root
	}
	parsed, err := url.Parse(path)
	if err != nil {
		return path
	}
	query := parsed.Query()
	query.Set(key, value)
	parsed.RawQuery = query.Encode()
	return parsed.String()
}
