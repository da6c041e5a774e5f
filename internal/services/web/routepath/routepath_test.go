package routepath

import "testing"

func TestTopLevelRouteConstants(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		Root:                "/",
		Login:               "/login",
		Logout:              "/logout",
		AuthCallback:        "/auth/callback",
		Health:              "/up",
		AppDashboard:        "/app/dashboard",
		AppOnboarding:       "/app/onboarding",
		AppOnboardingWizard: "/app/onboarding/wizard",
		AppOnboardingStep:   "/app/onboarding/step",
		AppOnboardingFinish: "/app/onboarding/finish",
	}
	for got, want := range tests {
		if got != want {
			t.Fatalf("route = %q, want %q", got, want)
		}
	}
}

func TestResolveNamedRoutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name Name
		want string
	}{
		{name: RouteLogin, want: Login},
		{name: RouteDashboard, want: AppDashboard},
		{name: RouteOnboarding, want: AppOnboarding},
		{name: RouteOnboardingFinish, want: AppOnboardingFinish},
		{name: " login ", want: Login},
	}
	for _, tc := range tests {
		got, ok := Resolve(tc.name)
		if !ok || got != tc.want {
			t.Fatalf("Resolve(%q) = (%q, %t), want (%q, true)", tc.name, got, ok, tc.want)
		}
	}
	if _, ok := Resolve("missing"); ok {
		t.Fatal("Resolve(missing) should fail")
	}
}

func TestMustResolvePanicsOnUnknownRoute(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustResolve("missing")
}

func TestWithQuery(t *testing.T) {
	t.Parallel()

	if got := WithQuery("/app/dashboard", "lang", "pt-BR"); got != "/app/dashboard?lang=pt-BR" {
		t.Fatalf("WithQuery() = %q", got)
	}
	if got := WithQuery("/login?x=1", "lang", "en-US"); got != "/login?lang=en-US&x=1" {
		t.Fatalf("WithQuery() = %q", got)
	}
	if got := WithQuery("", "lang", "en-US"); got != "/?lang=en-US" {
		t.Fatalf("WithQuery(empty) = %q", got)
	}
}
