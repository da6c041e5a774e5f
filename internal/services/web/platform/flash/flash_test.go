package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecohome/ecohome/internal/services/web/platform/requestmeta"
)

func TestWriteThenReadAndClear(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Write(rr, httptest.NewRequest(http.MethodPost, "/app/onboarding/finish", nil), Success("dashboard.notice.profile_saved"), requestmeta.SchemePolicy{})
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}

	req := httptest.NewRequest(http.MethodGet, "/app/dashboard", nil)
	req.AddCookie(cookies[0])
	next := httptest.NewRecorder()
	notice, ok := ReadAndClear(next, req)
	if !ok {
		t.Fatal("expected notice")
	}
	if notice.Kind != KindSuccess || notice.Key != "dashboard.notice.profile_saved" {
		t.Fatalf("notice = %+v", notice)
	}
	cleared := next.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 {
		t.Fatalf("expected cleared cookie, got %+v", cleared)
	}
}

func TestWriteIgnoresInvalidNotice(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Write(rr, httptest.NewRequest(http.MethodGet, "/", nil), Notice{Kind: "shout", Key: "x"}, requestmeta.SchemePolicy{})
	Write(rr, httptest.NewRequest(http.MethodGet, "/", nil), Notice{Kind: KindInfo, Key: " "}, requestmeta.SchemePolicy{})
	if got := len(rr.Result().Cookies()); got != 0 {
		t.Fatalf("cookies = %d, want 0", got)
	}
}

func TestReadAndClearRejectsGarbage(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "%%%"})
	if _, ok := ReadAndClear(httptest.NewRecorder(), req); ok {
		t.Fatal("expected garbage cookie to be rejected")
	}
}

func TestReadAndClearRejectsUnknownKindOrKey(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"shout:dashboard.notice.profile_saved", "info:<script>", "info:"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: value})
		if notice, ok := ReadAndClear(httptest.NewRecorder(), req); ok {
			t.Fatalf("ReadAndClear(%q) = %+v, want rejection", value, notice)
		}
	}
}
