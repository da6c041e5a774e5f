package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/ecohome/ecohome/internal/platform/storage/sqlitemigrate"
	webstorage "github.com/ecohome/ecohome/internal/services/web/storage"
	"github.com/ecohome/ecohome/internal/services/web/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for onboarding drafts.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ webstorage.DraftStore = (*Store)(nil)

// Open opens and migrates a web draft SQLite store.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetDraft loads the live draft for userID.
func (s *Store) GetDraft(ctx context.Context, userID string) (webstorage.Draft, bool, error) {
	if s == nil || s.sqlDB == nil {
		return webstorage.Draft{}, false, fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return webstorage.Draft{}, false, fmt.Errorf("user id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT user_id, step, payload_json, updated_at, expires_at
		 FROM onboarding_drafts
		 WHERE user_id = ?`,
		userID,
	)

	var draft webstorage.Draft
	var step int64
	var updatedAt int64
	var expiresAt int64
	if err := row.Scan(&draft.UserID, &step, &draft.Payload, &updatedAt, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return webstorage.Draft{}, false, nil
		}
		return webstorage.Draft{}, false, fmt.Errorf("get draft: %w", err)
	}
	draft.Step = int(step)
	draft.UpdatedAt = unixMillisToTime(updatedAt)
	draft.ExpiresAt = unixMillisToTime(expiresAt)
	if draft.Expired(s.now().UTC()) {
		return webstorage.Draft{}, false, nil
	}
	return draft, true, nil
}

// PutDraft upserts the draft for its user and prunes expired drafts.
func (s *Store) PutDraft(ctx context.Context, draft webstorage.Draft) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	draft.UserID = strings.TrimSpace(draft.UserID)
	if draft.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if len(draft.Payload) == 0 {
		return fmt.Errorf("draft payload is required")
	}
	if draft.ExpiresAt.IsZero() {
		return fmt.Errorf("draft expiry is required")
	}
	now := s.now().UTC()
	if draft.UpdatedAt.IsZero() {
		draft.UpdatedAt = now
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put draft: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM onboarding_drafts WHERE expires_at <= ?`, timeToUnixMillis(now)); err != nil {
		return fmt.Errorf("prune drafts: %w", err)
	}
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO onboarding_drafts (user_id, step, payload_json, updated_at, expires_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		    step = excluded.step,
		    payload_json = excluded.payload_json,
		    updated_at = excluded.updated_at,
		    expires_at = excluded.expires_at`,
		draft.UserID,
		int64(draft.Step),
		draft.Payload,
		timeToUnixMillis(draft.UpdatedAt),
		timeToUnixMillis(draft.ExpiresAt),
	); err != nil {
		return fmt.Errorf("put draft: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put draft: %w", err)
	}
	return nil
}

// DeleteDraft removes the draft for userID.
func (s *Store) DeleteDraft(ctx context.Context, userID string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM onboarding_drafts WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

func timeToUnixMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func unixMillisToTime(value int64) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}
