package web

import (
	"net/http"
	"strings"
	"sync"

	module "github.com/ecohome/ecohome/internal/services/web/module"
	"github.com/ecohome/ecohome/internal/services/web/modules/publicauth"
	webi18n "github.com/ecohome/ecohome/internal/services/web/platform/i18n"
	"github.com/ecohome/ecohome/internal/services/web/platform/sessioncookie"
)

// requestPrincipalState memoizes principal lookups for one request so the
// session token is verified at most once.
type requestPrincipalState struct {
	principalOnce sync.Once
	userID        string
	displayName   string
	languageOnce  sync.Once
	language      string
}

type requestPrincipalStateKey struct{}

type principalResolver struct {
	verifier publicauth.SessionVerifier
}

func newPrincipalResolver(verifier publicauth.SessionVerifier) principalResolver {
	return principalResolver{verifier: verifier}
}

func (r principalResolver) resolvePrincipalUncached(req *http.Request) (string, string) {
	if req == nil || r.verifier == nil {
		return "", ""
	}
	raw, ok := sessioncookie.Read(req)
	if !ok {
		return "", ""
	}
	claims, err := r.verifier.Verify(raw)
	if err != nil {
		return "", ""
	}
	return strings.TrimSpace(claims.UserID), strings.TrimSpace(claims.Name)
}

func (r principalResolver) resolvePrincipal(req *http.Request) (string, string) {
	if state := requestPrincipalStateFromRequest(req); state != nil {
		state.principalOnce.Do(func() {
			state.userID, state.displayName = r.resolvePrincipalUncached(req)
		})
		return state.userID, state.displayName
	}
	return r.resolvePrincipalUncached(req)
}

func (r principalResolver) resolveRequestUserID(req *http.Request) string {
	userID, _ := r.resolvePrincipal(req)
	return userID
}

func (r principalResolver) resolveViewer(req *http.Request) module.Viewer {
	userID, name := r.resolvePrincipal(req)
	if userID == "" {
		return module.Viewer{}
	}
	return module.Viewer{UserID: userID, DisplayName: name}
}

func (r principalResolver) resolveRequestLanguageUncached(req *http.Request) string {
	return webi18n.ResolveTag(req, nil).String()
}

func (r principalResolver) resolveRequestLanguage(req *http.Request) string {
	if state := requestPrincipalStateFromRequest(req); state != nil {
		state.languageOnce.Do(func() {
			state.language = r.resolveRequestLanguageUncached(req)
		})
		return state.language
	}
	return r.resolveRequestLanguageUncached(req)
}

func (r principalResolver) authRequired() func(*http.Request) bool {
	return func(req *http.Request) bool {
		return r.resolveRequestUserID(req) != ""
	}
}
