package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	module "github.com/ecohome/ecohome/internal/services/web/module"
	"github.com/ecohome/ecohome/internal/services/web/platform/httpx"
	"github.com/ecohome/ecohome/internal/services/web/platform/requestmeta"
	"github.com/ecohome/ecohome/internal/services/web/platform/sessioncookie"
	"github.com/ecohome/ecohome/internal/services/web/routepath"
)

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	AuthRequired        func(*http.Request) bool
	PublicModules       []module.Module
	ProtectedModules    []module.Module
	RequestSchemePolicy requestmeta.SchemePolicy
	Logger              *slog.Logger
}

// moduleGroup describes how one class of modules is mounted.
type moduleGroup struct {
	name      string
	modules   []module.Module
	protected bool
	wrap      func(http.Handler) http.Handler
}

// Compose builds a root HTTP handler from module groups.
//
// Public modules must stay outside /app/. Protected modules must live under
// /app/, are wrapped with the auth redirect and the same-origin gate, and are
// also reachable at their prefix without the trailing slash.
func Compose(input ComposeInput) (http.Handler, error) {
	authenticated := input.AuthRequired
	if authenticated == nil {
		authenticated = func(*http.Request) bool { return false }
	}
	logger := input.Logger
	if logger == nil {
		logger = slog.Default()
	}

	groups := []moduleGroup{
		{name: "public", modules: input.PublicModules},
		{
			name:      "protected",
			modules:   input.ProtectedModules,
			protected: true,
			wrap:      protectModule(authenticated, input.RequestSchemePolicy),
		},
	}

	root := http.NewServeMux()
	owners := make(map[string]string)
	for _, group := range groups {
		for _, feature := range group.modules {
			if feature == nil {
				return nil, fmt.Errorf("%s module is nil", group.name)
			}
			if err := group.mount(root, feature, owners); err != nil {
				return nil, err
			}
			logMounted(logger, group.name, feature)
		}
	}
	return root, nil
}

func (g moduleGroup) mount(root *http.ServeMux, feature module.Module, owners map[string]string) error {
	mount, err := resolveMount(feature)
	if err != nil {
		return err
	}
	prefix := mount.Prefix
	underApp := strings.HasPrefix(prefix, routepath.AppPrefix)
	switch {
	case g.protected && !underApp:
		return fmt.Errorf("module %q must mount under %s, got %q", feature.ID(), routepath.AppPrefix, prefix)
	case !g.protected && underApp:
		return fmt.Errorf("module %q has protected prefix %q in %s group", feature.ID(), prefix, g.name)
	}

	handler := mount.Handler
	if g.wrap != nil {
		handler = g.wrap(handler)
	}
	patterns := []string{prefix}
	if g.protected {
		patterns = append(patterns, strings.TrimSuffix(prefix, "/"))
	}
	for _, pattern := range patterns {
		if owner, taken := owners[pattern]; taken {
			return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), pattern, owner)
		}
		owners[pattern] = feature.ID()
		root.Handle(pattern, handler)
	}
	return nil
}

// resolveMount asks feature for its mount and checks the prefix shape.
func resolveMount(feature module.Module) (module.Mount, error) {
	mount, err := feature.Mount()
	if err != nil {
		return module.Mount{}, fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	if err := validatePrefix(mount.Prefix); err != nil {
		return module.Mount{}, fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), mount.Prefix, err)
	}
	if mount.Handler == nil {
		return module.Mount{}, fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, nil
}

func validatePrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("prefix is required")
	case strings.TrimSpace(prefix) != prefix:
		return fmt.Errorf("prefix must not include surrounding whitespace")
	case !strings.HasPrefix(prefix, "/"):
		return fmt.Errorf("prefix must begin with /")
	case !strings.HasSuffix(prefix, "/"):
		return fmt.Errorf("prefix must end with /")
	}
	return nil
}

func logMounted(logger *slog.Logger, group string, feature module.Module) {
	attrs := []any{"module", feature.ID(), "group", group}
	if reporter, ok := feature.(module.HealthReporter); ok && !reporter.Healthy() {
		logger.Warn("web module mounted in degraded mode", attrs...)
		return
	}
	logger.Debug("web module mounted", attrs...)
}

// protectModule sends anonymous requests to the login page and rejects
// cookie-authenticated mutations that lack same-origin proof.
func protectModule(authenticated func(*http.Request) bool, policy requestmeta.SchemePolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authenticated(r) {
				httpx.WriteRedirect(w, r, routepath.Login)
				return
			}
			if isMutation(r.Method) && hasSessionCookie(r) && !requestmeta.HasSameOriginProof(r, policy) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func hasSessionCookie(r *http.Request) bool {
	_, ok := sessioncookie.Read(r)
	return ok
}
