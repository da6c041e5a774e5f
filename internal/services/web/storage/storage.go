package storage

import (
	"context"
	"time"
)

// Draft stores one user's in-progress onboarding wizard state.
type Draft struct {
	UserID    string
	Step      int
	Payload   []byte
	UpdatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the draft is past its expiry at now.
func (d Draft) Expired(now time.Time) bool {
	return !d.ExpiresAt.IsZero() && !now.Before(d.ExpiresAt)
}

// DraftStore persists onboarding drafts keyed by user id.
//
// GetDraft reports found=false for missing or expired drafts. PutDraft prunes
// expired rows for every user.
type DraftStore interface {
	Close() error
	GetDraft(ctx context.Context, userID string) (Draft, bool, error)
	PutDraft(ctx context.Context, draft Draft) error
	DeleteDraft(ctx context.Context, userID string) error
}
