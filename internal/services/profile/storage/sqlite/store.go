// Package sqlite provides SQLite-backed household profile storage.
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
	"github.com/ecohome/ecohome/internal/services/profile/household"
	"github.com/ecohome/ecohome/internal/services/profile/storage"
	"github.com/ecohome/ecohome/internal/services/profile/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists household profiles in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ storage.ProfileStore = (*Store)(nil)

// Open opens and migrates a profile SQLite store at path.
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

// GetOnboardingStatus returns whether userID finished onboarding.
func (s *Store) GetOnboardingStatus(ctx context.Context, userID string) (bool, error) {
	if s == nil || s.sqlDB == nil {
		return false, fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false, fmt.Errorf("user id is required")
	}

	var completed int64
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT onboarding_completed FROM user_profiles WHERE user_id = ?`,
		userID,
	).Scan(&completed)
	if errors.Is(err, sql.ErrNoRows) {
		return false, storage.ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("get onboarding status: %w", err)
	}
	return completed != 0, nil
}

// GetProfile loads the full profile for userID.
func (s *Store) GetProfile(ctx context.Context, userID string) (household.Profile, error) {
	if s == nil || s.sqlDB == nil {
		return household.Profile{}, fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return household.Profile{}, fmt.Errorf("user id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT user_id, name, household_size, residence_size, has_garden, transportation_type,
		        heating_type, has_solar_panels, recycling_habit, onboarding_completed, has_seen_intro,
		        created_at, updated_at
		 FROM user_profiles
		 WHERE user_id = ?`,
		userID,
	)

	var (
		p                   household.Profile
		residence           string
		transport           string
		heating             string
		recycling           string
		hasGarden           int64
		hasSolarPanels      int64
		onboardingCompleted int64
		hasSeenIntro        int64
		createdAt           int64
		updatedAt           int64
	)
	if err := row.Scan(
		&p.UserID,
		&p.Name,
		&p.HouseholdSize,
		&residence,
		&hasGarden,
		&transport,
		&heating,
		&hasSolarPanels,
		&recycling,
		&onboardingCompleted,
		&hasSeenIntro,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return household.Profile{}, storage.ErrNotFound
		}
		return household.Profile{}, fmt.Errorf("get profile: %w", err)
	}

	p.ResidenceSize = household.ResidenceSize(residence)
	p.TransportationType = household.TransportationType(transport)
	p.HeatingType = household.HeatingType(heating)
	p.RecyclingHabit = household.RecyclingHabit(recycling)
	p.HasGarden = hasGarden != 0
	p.HasSolarPanels = hasSolarPanels != 0
	p.OnboardingCompleted = onboardingCompleted != 0
	p.HasSeenIntro = hasSeenIntro != 0
	p.CreatedAt = unixMillisToTime(createdAt)
	p.UpdatedAt = unixMillisToTime(updatedAt)
	return p, nil
}

// UpsertProfile inserts or updates the profile keyed by user id.
func (s *Store) UpsertProfile(ctx context.Context, profile household.Profile) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	profile, err := household.Normalize(profile)
	if err != nil {
		return err
	}
	now := s.now().UTC().UnixMilli()

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO user_profiles (
		    user_id, name, household_size, residence_size, has_garden, transportation_type,
		    heating_type, has_solar_panels, recycling_habit, onboarding_completed, has_seen_intro,
		    created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		    name = excluded.name,
		    household_size = excluded.household_size,
		    residence_size = excluded.residence_size,
		    has_garden = excluded.has_garden,
		    transportation_type = excluded.transportation_type,
		    heating_type = excluded.heating_type,
		    has_solar_panels = excluded.has_solar_panels,
		    recycling_habit = excluded.recycling_habit,
		    onboarding_completed = excluded.onboarding_completed,
		    has_seen_intro = excluded.has_seen_intro,
		    updated_at = excluded.updated_at`,
		profile.UserID,
		profile.Name,
		profile.HouseholdSize,
		string(profile.ResidenceSize),
		boolToInt(profile.HasGarden),
		string(profile.TransportationType),
		string(profile.HeatingType),
		boolToInt(profile.HasSolarPanels),
		string(profile.RecyclingHabit),
		boolToInt(profile.OnboardingCompleted),
		boolToInt(profile.HasSeenIntro),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func boolToInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}

func unixMillisToTime(value int64) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}
