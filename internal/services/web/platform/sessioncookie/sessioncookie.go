// Package sessioncookie centralizes the signed session cookie.
package sessioncookie

import (
	"net/http"
	"strings"
	"time"

	"github.com/ecohome/ecohome/internal/services/web/platform/requestmeta"
)

// Name is the canonical web session cookie name.
const Name = "ecohome_session"

// Read returns the trimmed session token when present.
func Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(Name)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

// Write stores token in the session cookie. A positive ttl bounds the cookie
// lifetime; zero leaves it as a browser-session cookie.
func Write(w http.ResponseWriter, r *http.Request, token string, ttl time.Duration, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	cookie := &http.Cookie{
		Name:     Name,
		Value:    strings.TrimSpace(token),
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r, policy),
		SameSite: http.SameSiteLaxMode,
	}
	if ttl > 0 {
		cookie.MaxAge = int(ttl.Seconds())
	}
	http.SetCookie(w, cookie)
}

// Clear expires the session cookie.
func Clear(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r, policy),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
