// Package httpx holds response and middleware helpers shared by web modules.
package httpx

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
)

// Middleware wraps an HTTP handler.
type Middleware func(http.Handler) http.Handler

// Chain wraps handler so the first middleware sees the request first.
// Nil middleware entries are skipped.
func Chain(handler http.Handler, middleware ...Middleware) http.Handler {
	if handler == nil {
		handler = http.NotFoundHandler()
	}
	for i := len(middleware) - 1; i >= 0; i-- {
		if wrap := middleware[i]; wrap != nil {
			handler = wrap(handler)
		}
	}
	return handler
}

// MethodNotAllowed answers 405 and advertises the allowed methods.
func MethodNotAllowed(allow string) http.HandlerFunc {
	allow = strings.TrimSpace(allow)
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Allow", allow)
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// RequestContext returns the request context, or context.Background for a nil request.
func RequestContext(r *http.Request) context.Context {
	if r != nil {
		return r.Context()
	}
	return context.Background()
}

// WriteHTML writes body as an HTML document with status.
func WriteHTML(w http.ResponseWriter, status int, body string) error {
	if w == nil {
		return errors.New("response writer is required")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := io.WriteString(w, body)
	return err
}

// IsHTMXRequest reports whether r was issued by htmx.
func IsHTMXRequest(r *http.Request) bool {
	return r != nil && r.Header.Get("HX-Request") == "true"
}

// WriteRedirect sends the client to location. htmx requests get an
// HX-Redirect header with 200 so the browser performs a full navigation.
func WriteRedirect(w http.ResponseWriter, r *http.Request, location string) {
	if w == nil {
		return
	}
	switch {
	case IsHTMXRequest(r):
		w.Header().Set("HX-Redirect", location)
		w.WriteHeader(http.StatusOK)
	case r == nil:
		w.Header().Set("Location", location)
		w.WriteHeader(http.StatusFound)
	default:
		http.Redirect(w, r, location, http.StatusFound)
	}
}
