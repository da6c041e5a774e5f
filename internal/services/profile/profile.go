// Package profile opens the household profile store selected by configuration.
package profile

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/ecohome/ecohome/internal/services/profile/storage"
	"github.com/ecohome/ecohome/internal/services/profile/storage/postgres"
	"github.com/ecohome/ecohome/internal/services/profile/storage/sqlite"
)

// Backend names the storage engine behind a DSN.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// ParseDSN resolves the backend and its connection string.
//
// postgres:// and postgresql:// select PostgreSQL and are passed through
// unchanged. sqlite://path and bare paths select SQLite.
func ParseDSN(dsn string) (Backend, string, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return "", "", fmt.Errorf("profile dsn is required")
	}
	scheme, rest, hasScheme := strings.Cut(dsn, "://")
	if !hasScheme {
		return BackendSQLite, dsn, nil
	}
	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		if _, err := url.Parse(dsn); err != nil {
			return "", "", fmt.Errorf("parse postgres dsn: %w", err)
		}
		return BackendPostgres, dsn, nil
	case "sqlite", "file":
		path := strings.TrimSpace(rest)
		if path == "" {
			return "", "", fmt.Errorf("sqlite dsn path is required")
		}
		return BackendSQLite, path, nil
	default:
		return "", "", fmt.Errorf("unsupported profile dsn scheme %q", scheme)
	}
}

// OpenStore opens the profile store described by dsn.
func OpenStore(ctx context.Context, dsn string) (storage.ProfileStore, error) {
	backend, target, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	switch backend {
	case BackendPostgres:
		store, err := postgres.Open(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("open postgres profile store: %w", err)
		}
		return store, nil
	default:
		store, err := sqlite.Open(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("open sqlite profile store: %w", err)
		}
		return store, nil
	}
}
