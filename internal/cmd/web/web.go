// Package web parses web command configuration and starts the browser service.
package web

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ecohome/ecohome/internal/auth/token"
	entrypoint "github.com/ecohome/ecohome/internal/platform/cmd"
	"github.com/ecohome/ecohome/internal/platform/logging"
	"github.com/ecohome/ecohome/internal/platform/timeouts"
	"github.com/ecohome/ecohome/internal/services/profile"
	"github.com/ecohome/ecohome/internal/services/web"
	websqlite "github.com/ecohome/ecohome/internal/services/web/storage/sqlite"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr            string        `env:"ECOHOME_WEB_HTTP_ADDR"               envDefault:"localhost:8080"`
	ProfileDSN          string        `env:"ECOHOME_PROFILE_DSN"                 envDefault:"data/ecohome-profiles.db"`
	DBPath              string        `env:"ECOHOME_WEB_DB_PATH"                 envDefault:"data/ecohome-web.db"`
	DevLogin            bool          `env:"ECOHOME_WEB_DEV_LOGIN"               envDefault:"false"`
	DraftTTL            time.Duration `env:"ECOHOME_WEB_DRAFT_TTL"               envDefault:"24h"`
	TrustForwardedProto bool          `env:"ECOHOME_WEB_TRUST_FORWARDED_PROTO"   envDefault:"false"`

	Auth token.Config
	Log  logging.Config
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	return parseConfig(fs, args, nil)
}

func parseConfig(fs *flag.FlagSet, args []string, environment map[string]string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg, environment); err != nil {
		return Config{}, err
	}
	if fs == nil {
		fs = flag.NewFlagSet("web", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.ProfileDSN, "profile-dsn", cfg.ProfileDSN, "profile store DSN (sqlite path or postgres:// URL)")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite path for onboarding drafts")
	fs.BoolVar(&cfg.DevLogin, "dev-login", cfg.DevLogin, "enable the development email sign-in form")
	fs.DurationVar(&cfg.DraftTTL, "draft-ttl", cfg.DraftTTL, "how long an untouched onboarding draft is kept")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Log.Format, "log-format", cfg.Log.Format, "log format (pretty, text, json)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.HTTPAddr = strings.TrimSpace(cfg.HTTPAddr)
	return cfg, nil
}

// Run opens the stores and serves the web service until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	cfg.Log.Prefix = "web"
	logger, err := logging.New(cfg.Log, nil)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Close() }()
	slog.SetDefault(logger.Logger)

	return entrypoint.Run(ctx, entrypoint.Service{Name: entrypoint.ServiceWeb, Logger: logger.Logger}, func(ctx context.Context) error {
		return serve(ctx, cfg, logger.Logger)
	})
}

func serve(ctx context.Context, cfg Config, logger *slog.Logger) error {
	if err := cfg.Auth.Validate(); err != nil {
		return fmt.Errorf("auth config: %w", err)
	}
	issuer, err := token.NewIssuer(cfg.Auth)
	if err != nil {
		return fmt.Errorf("init session issuer: %w", err)
	}
	verifier, err := token.NewVerifier(cfg.Auth)
	if err != nil {
		return fmt.Errorf("init session verifier: %w", err)
	}

	openCtx, cancel := context.WithTimeout(ctx, timeouts.StoreConnect)
	profiles, err := profile.OpenStore(openCtx, cfg.ProfileDSN)
	cancel()
	if err != nil {
		return fmt.Errorf("open profile store: %w", err)
	}
	defer func() {
		if err := profiles.Close(); err != nil {
			logger.Error("close profile store", "error", err)
		}
	}()

	openCtx, cancel = context.WithTimeout(ctx, timeouts.StoreConnect)
	drafts, err := websqlite.Open(openCtx, cfg.DBPath)
	cancel()
	if err != nil {
		return fmt.Errorf("open draft store: %w", err)
	}
	defer func() {
		if err := drafts.Close(); err != nil {
			logger.Error("close draft store", "error", err)
		}
	}()

	server, err := web.NewServer(ctx, web.Config{
		HTTPAddr:            cfg.HTTPAddr,
		ProfileStore:        profiles,
		DraftStore:          drafts,
		DraftTTL:            cfg.DraftTTL,
		SessionIssuer:       issuer,
		SessionVerifier:     verifier,
		SessionTTL:          cfg.Auth.TTL,
		DevLogin:            cfg.DevLogin,
		TrustForwardedProto: cfg.TrustForwardedProto,
		Logger:              logger,
	})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}
