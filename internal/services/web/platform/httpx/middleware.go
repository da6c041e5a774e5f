package httpx

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/ecohome/ecohome/internal/platform/id"
)

// RequestIDHeader carries the correlation id across the request.
const RequestIDHeader = "X-Request-ID"

// RequestID makes sure every request carries a correlation id and echoes it
// back to the client.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := strings.TrimSpace(r.Header.Get(RequestIDHeader))
			if rid == "" {
				rid = newRequestID()
				r.Header.Set(RequestIDHeader, rid)
			}
			w.Header().Set(RequestIDHeader, rid)
			next.ServeHTTP(w, r)
		})
	}
}

// RecoverPanic logs a handler panic with its stack and answers 500.
func RecoverPanic(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				rid := r.Header.Get(RequestIDHeader)
				if rid == "" {
					rid = "-"
				}
				logger.Error("panic recovered",
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", rid,
					"panic", fmt.Sprint(recovered),
					"stack", string(debug.Stack()),
				)
				w.WriteHeader(http.StatusInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// newRequestID falls back to a fixed marker when the random source fails.
func newRequestID() string {
	value, err := id.NewID()
	if err != nil {
		return "web-unknown"
	}
	return "web-" + value
}
