// Package storage defines persistence contracts for household profiles.
package storage

import (
	"context"
	"errors"

	"github.com/ecohome/ecohome/internal/services/profile/household"
)

// ErrNotFound indicates no profile row exists for the requested user.
//
// Backends translate their own no-row signal (sql.ErrNoRows, pgx.ErrNoRows)
// into this sentinel; every other failure is returned as a real error.
var ErrNotFound = errors.New("record not found")

// ProfileStore persists one household profile per user.
type ProfileStore interface {
	// GetOnboardingStatus returns the onboarding_completed flag for userID.
	GetOnboardingStatus(ctx context.Context, userID string) (bool, error)
	// GetProfile returns the full profile record for userID.
	GetProfile(ctx context.Context, userID string) (household.Profile, error)
	// UpsertProfile inserts or updates the profile keyed by its user id.
	// created_at is preserved when the row already exists.
	UpsertProfile(ctx context.Context, profile household.Profile) error
	Close() error
}
