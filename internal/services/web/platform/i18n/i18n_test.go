package i18n

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/ecohome/ecohome/internal/services/web/platform/errors"
	"golang.org/x/text/language"
)

func TestResolveTagPrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		target   string
		cookie   string
		accept   string
		resolver func(*http.Request) string
		want     string
	}{
		{name: "default", target: "/", want: "en-US"},
		{name: "accept language", target: "/", accept: "pt-BR,pt;q=0.9", want: "pt-BR"},
		{name: "base language match", target: "/", accept: "pt-PT", want: "pt-BR"},
		{name: "cookie beats accept", target: "/", cookie: "en-US", accept: "pt-BR", want: "en-US"},
		{name: "query beats cookie", target: "/?lang=pt-BR", cookie: "en-US", want: "pt-BR"},
		{name: "resolver beats query", target: "/?lang=pt-BR", resolver: func(*http.Request) string { return "en-US" }, want: "en-US"},
		{name: "blank resolver falls through", target: "/?lang=pt-BR", resolver: func(*http.Request) string { return "" }, want: "pt-BR"},
		{name: "unsupported falls back", target: "/", accept: "ja-JP", want: "en-US"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tc.cookie})
			}
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			if got := ResolveTag(req, tc.resolver).String(); got != tc.want {
				t.Fatalf("ResolveTag() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEnsureLanguageCookieSkipsWhenCurrent(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: LangCookieName, Value: "pt-BR"})
	rr := httptest.NewRecorder()
	EnsureLanguageCookie(rr, req, language.MustParse("pt-BR"))
	if got := len(rr.Result().Cookies()); got != 0 {
		t.Fatalf("cookies = %d, want 0", got)
	}

	rr = httptest.NewRecorder()
	EnsureLanguageCookie(rr, req, language.MustParse("en-US"))
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "en-US" {
		t.Fatalf("cookies = %+v", cookies)
	}
}

func TestResolveLocalizerTranslatesCatalogKeys(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?lang=pt-BR", nil)
	loc, lang := ResolveLocalizer(httptest.NewRecorder(), req, nil)
	if lang != "pt-BR" {
		t.Fatalf("lang = %q", lang)
	}
	if got := loc.Sprintf("onboarding.action.back"); got != "Voltar" {
		t.Fatalf("back = %q, want %q", got, "Voltar")
	}
}

func TestLocalizeError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	loc, _ := ResolveLocalizer(httptest.NewRecorder(), req, nil)

	keyed := apperrors.EK(apperrors.KindInvalidInput, "onboarding.error.name_required", "name is required")
	if got := LocalizeError(loc, keyed); got != "Please enter your name." {
		t.Fatalf("LocalizeError(keyed) = %q", got)
	}
	if got := LocalizeError(loc, errors.New(" plain ")); got != "plain" {
		t.Fatalf("LocalizeError(plain) = %q", got)
	}
	if got := LocalizeError(nil, keyed); got != "name is required" {
		t.Fatalf("LocalizeError(nil loc) = %q", got)
	}
	if got := LocalizeError(loc, nil); got != "" {
		t.Fatalf("LocalizeError(nil) = %q", got)
	}
}
