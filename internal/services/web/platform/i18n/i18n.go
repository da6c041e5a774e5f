// Package i18n resolves the request language and localizer for web handlers.
package i18n

import (
	"net/http"
	"strings"
	"time"

	platformi18n "github.com/ecohome/ecohome/internal/platform/i18n"
	"github.com/ecohome/ecohome/internal/platform/i18n/catalog"
	apperrors "github.com/ecohome/ecohome/internal/services/web/platform/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the language preference.
	LangCookieName = "ecohome_lang"
)

// Localizer exposes translated formatting used by templates and handlers.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// ResolveTag resolves the request language. A resolver result wins, then the
// lang query parameter, the language cookie and finally Accept-Language.
func ResolveTag(r *http.Request, resolveLanguage func(*http.Request) string) language.Tag {
	if resolveLanguage != nil {
		if tag, ok := platformi18n.ParseTag(resolveLanguage(r)); ok {
			return tag
		}
	}
	if r == nil {
		return platformi18n.DefaultTag()
	}
	if r.URL != nil {
		if tag, ok := platformi18n.ParseTag(r.URL.Query().Get(LangParam)); ok {
			return tag
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := platformi18n.ParseTag(cookie.Value); ok {
			return tag
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			return platformi18n.MatchTags(tags)
		}
	}
	return platformi18n.DefaultTag()
}

// EnsureLanguageCookie syncs the language cookie to tag.
func EnsureLanguageCookie(w http.ResponseWriter, r *http.Request, tag language.Tag) {
	if w == nil {
		return
	}
	expected := strings.TrimSpace(tag.String())
	if expected == "" {
		return
	}
	if r != nil {
		if cookie, err := r.Cookie(LangCookieName); err == nil && strings.TrimSpace(cookie.Value) == expected {
			return
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    expected,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// Printer returns a message printer for tag backed by the embedded catalogs.
func Printer(tag language.Tag) *message.Printer {
	catalog.Default()
	return message.NewPrinter(tag)
}

// ResolveLocalizer resolves a localized printer and language string for a request.
func ResolveLocalizer(w http.ResponseWriter, r *http.Request, resolveLanguage func(*http.Request) string) (*message.Printer, string) {
	tag := ResolveTag(r, resolveLanguage)
	EnsureLanguageCookie(w, r, tag)
	return Printer(tag), tag.String()
}

// LocalizeError resolves a translated error string when a key is available.
func LocalizeError(loc Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			return loc.Sprintf(key)
		}
	}
	return strings.TrimSpace(err.Error())
}
