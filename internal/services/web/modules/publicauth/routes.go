package publicauth

import (
	"net/http"

	"github.com/ecohome/ecohome/internal/services/web/platform/httpx"
	"github.com/ecohome/ecohome/internal/services/web/routepath"
)

func registerShellRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleRoot)
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, h.handleHealth)
	mux.HandleFunc(http.MethodGet+" "+routepath.Login, h.handleLogin)
	mux.HandleFunc(http.MethodPost+" "+routepath.Login, h.handleLoginPost)
	mux.HandleFunc(http.MethodPost+" "+routepath.Logout, h.handleLogout)
	mux.HandleFunc(http.MethodGet+" "+routepath.Logout, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{rest...}", h.WriteNotFound)
}

func registerAuthRedirectRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AuthCallback, h.handleCallback)
	mux.HandleFunc(http.MethodGet+" "+routepath.AuthPrefix+"{rest...}", h.WriteNotFound)
}
