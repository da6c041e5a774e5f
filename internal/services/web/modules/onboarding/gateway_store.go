package onboarding

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecohome/ecohome/internal/services/profile/household"
	profilestorage "github.com/ecohome/ecohome/internal/services/profile/storage"
	webstorage "github.com/ecohome/ecohome/internal/services/web/storage"
)

// DefaultDraftTTL bounds how long an untouched draft is kept.
const DefaultDraftTTL = 24 * time.Hour

type storeProfileGateway struct {
	store profilestorage.ProfileStore
}

// NewStoreProfileGateway adapts a profile store to the onboarding gateway.
func NewStoreProfileGateway(store profilestorage.ProfileStore) ProfileGateway {
	if store == nil {
		return unavailableProfileGateway{}
	}
	return storeProfileGateway{store: store}
}

func (g storeProfileGateway) OnboardingStatus(ctx context.Context, userID string) (bool, error) {
	return g.store.GetOnboardingStatus(ctx, userID)
}

func (g storeProfileGateway) SaveProfile(ctx context.Context, profile household.Profile) error {
	return g.store.UpsertProfile(ctx, profile)
}

type storeDraftGateway struct {
	store webstorage.DraftStore
	ttl   time.Duration
	now   func() time.Time
}

// NewStoreDraftGateway adapts a web draft store to the onboarding gateway.
// A non-positive ttl uses DefaultDraftTTL.
func NewStoreDraftGateway(store webstorage.DraftStore, ttl time.Duration) DraftGateway {
	if store == nil {
		return unavailableDraftGateway{}
	}
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return storeDraftGateway{store: store, ttl: ttl, now: time.Now}
}

func (g storeDraftGateway) LoadDraft(ctx context.Context, userID string) (Wizard, bool, error) {
	draft, found, err := g.store.GetDraft(ctx, userID)
	if err != nil || !found {
		return Wizard{}, false, err
	}
	var form FormData
	if err := json.Unmarshal(draft.Payload, &form); err != nil {
		return Wizard{}, false, fmt.Errorf("decode onboarding draft: %w", err)
	}
	return Wizard{Step: Step(draft.Step), Form: form}.normalized(), true, nil
}

func (g storeDraftGateway) SaveDraft(ctx context.Context, userID string, wizard Wizard) error {
	payload, err := json.Marshal(wizard.Form)
	if err != nil {
		return fmt.Errorf("encode onboarding draft: %w", err)
	}
	now := g.now().UTC()
	return g.store.PutDraft(ctx, webstorage.Draft{
		UserID:    userID,
		Step:      int(wizard.Step),
		Payload:   payload,
		UpdatedAt: now,
		ExpiresAt: now.Add(g.ttl),
	})
}

func (g storeDraftGateway) DeleteDraft(ctx context.Context, userID string) error {
	return g.store.DeleteDraft(ctx, userID)
}
