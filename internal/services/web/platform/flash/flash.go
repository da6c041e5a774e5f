// Package flash carries a single notice across one redirect.
//
// The notice travels as "kind:key" in a short-lived cookie and is rendered
// from the message catalog, so no user text ever lands in the cookie.
package flash

import (
	"net/http"
	"strings"

	"github.com/ecohome/ecohome/internal/services/web/platform/requestmeta"
)

// CookieName is the cookie used for one-time notices.
const CookieName = "ecohome_flash"

// maxAge bounds how long an unread notice survives.
const maxAge = 60

// Kind selects how a notice is styled.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindError   Kind = "error"
)

// Notice names a catalog message and its styling.
type Notice struct {
	Kind Kind
	Key  string
}

func Success(key string) Notice { return Notice{Kind: KindSuccess, Key: key} }

func Info(key string) Notice { return Notice{Kind: KindInfo, Key: key} }

// Write queues notice for the next page render. Invalid notices are dropped.
func Write(w http.ResponseWriter, r *http.Request, notice Notice, policy requestmeta.SchemePolicy) {
	if w == nil || !notice.valid() {
		return
	}
	cookie := noticeCookie(string(notice.Kind) + ":" + notice.Key)
	cookie.MaxAge = maxAge
	cookie.Secure = requestmeta.IsHTTPS(r, policy)
	http.SetCookie(w, cookie)
}

// ReadAndClear pops the queued notice, if any.
func ReadAndClear(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	if r == nil {
		return Notice{}, false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Notice{}, false
	}
	if w != nil {
		expired := noticeCookie("")
		expired.MaxAge = -1
		http.SetCookie(w, expired)
	}
	kind, key, found := strings.Cut(cookie.Value, ":")
	if !found {
		return Notice{}, false
	}
	notice := Notice{Kind: Kind(kind), Key: key}
	if !notice.valid() {
		return Notice{}, false
	}
	return notice, true
}

func noticeCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (n Notice) valid() bool {
	switch n.Kind {
	case KindSuccess, KindInfo, KindError:
	default:
		return false
	}
	if n.Key == "" {
		return false
	}
	for _, c := range n.Key {
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '.' || c == '_') {
			return false
		}
	}
	return true
}
