// Package postgres provides PostgreSQL-backed household profile storage.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ecohome/ecohome/internal/services/profile/household"
	"github.com/ecohome/ecohome/internal/services/profile/storage"
	"github.com/ecohome/ecohome/internal/services/profile/storage/postgres/migrations"
	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

const migrationsTable = "ecohome_schema_migrations"

// Store persists household profiles in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

var _ storage.ProfileStore = (*Store)(nil)

// Open connects to dsn, verifies the connection and applies migrations.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := runMigrations(pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{pool: pool, now: time.Now}, nil
}

func runMigrations(pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return fmt.Errorf("create migrate driver: %w", err)
	}
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if s == nil || s.pool == nil {
		return nil
	}
	s.pool.Close()
	return nil
}

// GetOnboardingStatus returns whether userID finished onboarding.
func (s *Store) GetOnboardingStatus(ctx context.Context, userID string) (bool, error) {
	if s == nil || s.pool == nil {
		return false, fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false, fmt.Errorf("user id is required")
	}

	var completed bool
	err := s.pool.QueryRow(ctx,
		`SELECT onboarding_completed FROM user_profiles WHERE user_id = $1`,
		userID,
	).Scan(&completed)
	if err != nil {
		return false, translateError("get onboarding status", err)
	}
	return completed, nil
}

// GetProfile loads the full profile for userID.
func (s *Store) GetProfile(ctx context.Context, userID string) (household.Profile, error) {
	if s == nil || s.pool == nil {
		return household.Profile{}, fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return household.Profile{}, fmt.Errorf("user id is required")
	}

	var (
		p         household.Profile
		residence string
		transport string
		heating   string
		recycling string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT user_id, name, household_size, residence_size, has_garden, transportation_type,
		        heating_type, has_solar_panels, recycling_habit, onboarding_completed, has_seen_intro,
		        created_at, updated_at
		 FROM user_profiles
		 WHERE user_id = $1`,
		userID,
	).Scan(
		&p.UserID,
		&p.Name,
		&p.HouseholdSize,
		&residence,
		&p.HasGarden,
		&transport,
		&heating,
		&p.HasSolarPanels,
		&recycling,
		&p.OnboardingCompleted,
		&p.HasSeenIntro,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return household.Profile{}, translateError("get profile", err)
	}
	p.ResidenceSize = household.ResidenceSize(residence)
	p.TransportationType = household.TransportationType(transport)
	p.HeatingType = household.HeatingType(heating)
	p.RecyclingHabit = household.RecyclingHabit(recycling)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

// UpsertProfile inserts or updates the profile keyed by user id.
func (s *Store) UpsertProfile(ctx context.Context, profile household.Profile) error {
	if s == nil || s.pool == nil {
		return fmt.Errorf("storage is not configured")
	}
	profile, err := household.Normalize(profile)
	if err != nil {
		return err
	}
	now := s.now().UTC()

	_, err = s.pool.Exec(ctx,
		`INSERT INTO user_profiles (
		    user_id, name, household_size, residence_size, has_garden, transportation_type,
		    heating_type, has_solar_panels, recycling_habit, onboarding_completed, has_seen_intro,
		    created_at, updated_at
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		 ON CONFLICT (user_id) DO UPDATE SET
		    name = EXCLUDED.name,
		    household_size = EXCLUDED.household_size,
		    residence_size = EXCLUDED.residence_size,
		    has_garden = EXCLUDED.has_garden,
		    transportation_type = EXCLUDED.transportation_type,
		    heating_type = EXCLUDED.heating_type,
		    has_solar_panels = EXCLUDED.has_solar_panels,
		    recycling_habit = EXCLUDED.recycling_habit,
		    onboarding_completed = EXCLUDED.onboarding_completed,
		    has_seen_intro = EXCLUDED.has_seen_intro,
		    updated_at = EXCLUDED.updated_at`,
		profile.UserID,
		profile.Name,
		profile.HouseholdSize,
		string(profile.ResidenceSize),
		profile.HasGarden,
		string(profile.TransportationType),
		string(profile.HeatingType),
		profile.HasSolarPanels,
		string(profile.RecyclingHabit),
		profile.OnboardingCompleted,
		profile.HasSeenIntro,
		now,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// translateError maps pgx.ErrNoRows onto storage.ErrNotFound.
func translateError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
