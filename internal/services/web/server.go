package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ecohome/ecohome/internal/platform/timeouts"
	profilestorage "github.com/ecohome/ecohome/internal/services/profile/storage"
	webapp "github.com/ecohome/ecohome/internal/services/web/app"
	"github.com/ecohome/ecohome/internal/services/web/modules"
	"github.com/ecohome/ecohome/internal/services/web/modules/publicauth"
	"github.com/ecohome/ecohome/internal/services/web/platform/httpx"
	"github.com/ecohome/ecohome/internal/services/web/platform/observability"
	"github.com/ecohome/ecohome/internal/services/web/platform/requestmeta"
	"github.com/ecohome/ecohome/internal/services/web/routepath"
	webstatic "github.com/ecohome/ecohome/internal/services/web/static"
	webstorage "github.com/ecohome/ecohome/internal/services/web/storage"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr string

	ProfileStore profilestorage.ProfileStore
	DraftStore   webstorage.DraftStore
	DraftTTL     time.Duration

	SessionIssuer   publicauth.SessionIssuer
	SessionVerifier publicauth.SessionVerifier
	SessionTTL      time.Duration
	DevLogin        bool

	TrustForwardedProto bool
	Logger              *slog.Logger
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     *slog.Logger
}

// NewHandler builds a root handler from the default module registry groups.
func NewHandler(cfg Config) (http.Handler, error) {
	logger := cfg.logger()
	policy := requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto}
	principal := newPrincipalResolver(cfg.SessionVerifier)
	resolvers := modules.ModuleResolvers{
		ResolveViewer:   principal.resolveViewer,
		ResolveUserID:   principal.resolveRequestUserID,
		ResolveLanguage: principal.resolveRequestLanguage,
	}
	deps := modules.Dependencies{
		ProfileStore:        cfg.ProfileStore,
		DraftStore:          cfg.DraftStore,
		DraftTTL:            cfg.DraftTTL,
		Sessions:            publicauth.NewTokenGateway(cfg.SessionIssuer, cfg.SessionVerifier, cfg.SessionTTL),
		DevLogin:            cfg.DevLogin,
		SessionTTL:          cfg.SessionTTL,
		RequestSchemePolicy: policy,
		Logger:              logger,
	}
	h, err := webapp.BuildRootHandler(webapp.Config{
		PublicModules:       modules.DefaultPublicModules(deps, resolvers),
		ProtectedModules:    modules.DefaultProtectedModules(deps, resolvers),
		RequestSchemePolicy: policy,
		Logger:              logger,
	}, principal.authRequired())
	if err != nil {
		return nil, err
	}
	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(webstatic.FS))))
	rootMux.Handle(routepath.Root, h)
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		withRequestPrincipalState(),
		observability.RequestLogger(logger),
	), nil
}

func withRequestPrincipalState() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r == nil {
				next.ServeHTTP(w, r)
				return
			}
			state := &requestPrincipalState{}
			ctx := context.WithValue(r.Context(), requestPrincipalStateKey{}, state)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func requestPrincipalStateFromRequest(r *http.Request) *requestPrincipalState {
	if r == nil {
		return nil
	}
	state, _ := r.Context().Value(requestPrincipalStateKey{}).(*requestPrincipalState)
	return state
}

// NewServer validates config and constructs a web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		logger:   cfg.logger(),
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()
	s.logger.Info("web server listening", "addr", s.httpAddr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
