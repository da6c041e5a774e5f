package weberror

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	module "github.com/ecohome/ecohome/internal/services/web/module"
	apperrors "github.com/ecohome/ecohome/internal/services/web/platform/errors"
	webi18n "github.com/ecohome/ecohome/internal/services/web/platform/i18n"
	"golang.org/x/text/language"
)

func TestShouldRenderAppError(t *testing.T) {
	t.Parallel()

	for status, want := range map[int]bool{
		http.StatusNotFound:            true,
		http.StatusInternalServerError: true,
		http.StatusServiceUnavailable:  true,
		http.StatusBadRequest:          false,
		http.StatusUnauthorized:        false,
	} {
		if got := ShouldRenderAppError(status); got != want {
			t.Fatalf("ShouldRenderAppError(%d) = %t, want %t", status, got, want)
		}
	}
}

func TestPublicMessagePrefersLocalizedKey(t *testing.T) {
	t.Parallel()

	loc := webi18n.Printer(language.MustParse("en-US"))
	err := apperrors.EK(apperrors.KindUnauthorized, "error.web.message.user_id_is_required", "user id is required")
	if got := PublicMessage(loc, err); got != "You need to sign in to continue." {
		t.Fatalf("PublicMessage() = %q", got)
	}
	if got := PublicMessage(loc, errors.New("secret db detail")); got != http.StatusText(http.StatusInternalServerError) {
		t.Fatalf("PublicMessage(plain) = %q", got)
	}
}

func TestWriteModuleErrorRendersUnavailablePage(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/app/onboarding/wizard", nil)
	WriteModuleError(rr, req, apperrors.E(apperrors.KindUnavailable, "profile store is not configured"), module.Dependencies{})
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Service unavailable") || strings.Contains(body, "not configured") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestWriteModuleErrorWritesPlainClientError(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/app/onboarding/step", nil)
	WriteModuleError(rr, req, apperrors.EK(apperrors.KindInvalidInput, "error.web.message.failed_to_parse_form", "bad form"), module.Dependencies{})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "The form could not be read") {
		t.Fatalf("body = %q", rr.Body.String())
	}
}
