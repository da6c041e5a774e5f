package onboarding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ecohome/ecohome/internal/platform/otel"
	"github.com/ecohome/ecohome/internal/services/profile/household"
	profilestorage "github.com/ecohome/ecohome/internal/services/profile/storage"
	apperrors "github.com/ecohome/ecohome/internal/services/web/platform/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/ecohome/ecohome/internal/services/web/modules/onboarding"

var (
	// ErrGuardAbandoned reports a guard whose request went away before the
	// lookup resolved. Nothing should be rendered for it.
	ErrGuardAbandoned = errors.New("onboarding guard abandoned")
	// ErrSaveFailed reports a failed profile upsert on submission.
	ErrSaveFailed = errors.New("onboarding profile save failed")
)

// ProfileGateway reads onboarding status and writes household profiles.
// OnboardingStatus returns profilestorage.ErrNotFound when the user has no profile.
type ProfileGateway interface {
	OnboardingStatus(ctx context.Context, userID string) (bool, error)
	SaveProfile(ctx context.Context, profile household.Profile) error
}

// DraftGateway persists in-progress wizard state per user.
type DraftGateway interface {
	LoadDraft(ctx context.Context, userID string) (Wizard, bool, error)
	SaveDraft(ctx context.Context, userID string, wizard Wizard) error
	DeleteDraft(ctx context.Context, userID string) error
}

// GuardDecision is the outcome of the onboarding route guard.
type GuardDecision int

const (
	GuardAllow GuardDecision = iota
	GuardRedirectLogin
	GuardRedirectDashboard
)

type guardResult struct {
	Decision GuardDecision
	Wizard   Wizard
}

// submission is one parsed step form post.
type submission struct {
	Step   Step
	Action Action
	Input  StepInput
}

type stepResult struct {
	Wizard   Wizard
	ErrorKey string
	// AlreadyCompleted is set when the user finished onboarding earlier.
	AlreadyCompleted bool
}

type finishResult struct {
	Wizard           Wizard
	Completed        bool
	ErrorKey         string
	AlreadyCompleted bool
}

type service struct {
	profiles ProfileGateway
	drafts   DraftGateway
	logger   *slog.Logger
	tracer   trace.Tracer
}

func newService(profiles ProfileGateway, drafts DraftGateway, logger *slog.Logger) service {
	if profiles == nil {
		profiles = unavailableProfileGateway{}
	}
	if drafts == nil {
		drafts = unavailableDraftGateway{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return service{
		profiles: profiles,
		drafts:   drafts,
		logger:   logger.With("module", "onboarding"),
		tracer:   otel.Tracer(tracerName),
	}
}

// guard decides whether userID may see the wizard. An allowed user always
// starts from an empty wizard; the draft only lives across the step posts of
// one visit.
func (s service) guard(ctx context.Context, userID string) (guardResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return guardResult{Decision: GuardRedirectLogin}, nil
	}

	ctx, span := s.tracer.Start(ctx, "onboarding.guard", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	completed, err := s.profiles.OnboardingStatus(ctx, userID)
	if ctx.Err() != nil {
		span.SetAttributes(attribute.Bool("onboarding.abandoned", true))
		return guardResult{}, ErrGuardAbandoned
	}
	if err != nil && !errors.Is(err, profilestorage.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "onboarding status lookup failed")
		s.logger.ErrorContext(ctx, "onboarding status lookup failed", "user_id", userID, "error", err)
		return guardResult{Decision: GuardRedirectLogin}, nil
	}
	if completed {
		return guardResult{Decision: GuardRedirectDashboard}, nil
	}

	wizard := NewWizard()
	if err := s.drafts.SaveDraft(ctx, userID, wizard); err != nil {
		s.logger.WarnContext(ctx, "onboarding draft reset failed", "user_id", userID, "error", err)
	}
	return guardResult{Decision: GuardAllow, Wizard: wizard}, nil
}

// alreadyCompleted reports whether userID finished onboarding before. Lookup
// failures fail closed so nothing is written.
func (s service) alreadyCompleted(ctx context.Context, userID string) (bool, error) {
	completed, err := s.profiles.OnboardingStatus(ctx, userID)
	if err != nil && !errors.Is(err, profilestorage.ErrNotFound) {
		s.logger.ErrorContext(ctx, "onboarding status lookup failed", "user_id", userID, "error", err)
		return false, apperrors.Wrap(apperrors.KindUnavailable, "error.web.message.profile_store_unavailable", err)
	}
	return completed, nil
}

// update applies a step form post to the user's draft.
func (s service) update(ctx context.Context, userID string, sub submission) (stepResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return stepResult{}, apperrors.EK(apperrors.KindUnauthorized, "error.web.message.user_id_is_required", "user id is required")
	}
	completed, err := s.alreadyCompleted(ctx, userID)
	if err != nil {
		return stepResult{}, err
	}
	if completed {
		return stepResult{AlreadyCompleted: true}, nil
	}
	wizard, err := s.loadDraft(ctx, userID)
	if err != nil {
		return stepResult{}, err
	}
	wizard = applySubmission(wizard, sub)

	result := stepResult{}
	switch sub.Action {
	case ActionNext:
		next, moved := wizard.Next()
		if !moved && sub.Step == wizard.Step {
			result.ErrorKey = stepErrorKey(wizard)
		}
		wizard = next
	case ActionBack:
		wizard, _ = wizard.Back()
	}

	if err := s.drafts.SaveDraft(ctx, userID, wizard); err != nil {
		return stepResult{}, apperrors.Wrap(apperrors.KindUnavailable, "error.web.message.draft_store_unavailable", err)
	}
	result.Wizard = wizard
	return result, nil
}

// finish submits the completed wizard as the user's profile.
func (s service) finish(ctx context.Context, userID string, sub submission) (finishResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return finishResult{}, apperrors.EK(apperrors.KindUnauthorized, "error.web.message.user_id_is_required", "user id is required")
	}
	completed, err := s.alreadyCompleted(ctx, userID)
	if err != nil {
		return finishResult{}, err
	}
	if completed {
		return finishResult{AlreadyCompleted: true}, nil
	}
	wizard, err := s.loadDraft(ctx, userID)
	if err != nil {
		return finishResult{}, err
	}
	wizard = applySubmission(wizard, sub)

	if invalid, ok := wizard.FirstInvalidStep(); ok {
		wizard.Step = invalid
		if err := s.drafts.SaveDraft(ctx, userID, wizard); err != nil {
			s.logger.WarnContext(ctx, "onboarding draft save failed", "user_id", userID, "error", err)
		}
		return finishResult{Wizard: wizard, ErrorKey: stepErrorKey(wizard)}, nil
	}
	// Finish belongs to the last step only.
	if !wizard.CanFinish() {
		return finishResult{Wizard: wizard, ErrorKey: "onboarding.error.step_incomplete"}, nil
	}
	if err := s.drafts.SaveDraft(ctx, userID, wizard); err != nil {
		s.logger.WarnContext(ctx, "onboarding draft save failed", "user_id", userID, "error", err)
	}

	profile, err := wizard.Profile(userID)
	if err != nil {
		wizard.Step = StepHousehold
		return finishResult{Wizard: wizard, ErrorKey: stepErrorKey(wizard)}, nil
	}

	ctx, span := s.tracer.Start(ctx, "onboarding.finish", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.Int("household.size", profile.HouseholdSize),
	))
	defer span.End()

	if err := s.profiles.SaveProfile(ctx, profile); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "profile upsert failed")
		s.logger.ErrorContext(ctx, "onboarding profile save failed", "user_id", userID, "error", err)
		return finishResult{Wizard: wizard}, apperrors.Wrap(apperrors.KindUnavailable, "onboarding.error.save_failed", fmt.Errorf("%w: %w", ErrSaveFailed, err))
	}

	if err := s.drafts.DeleteDraft(ctx, userID); err != nil {
		s.logger.WarnContext(ctx, "onboarding draft delete failed", "user_id", userID, "error", err)
	}
	s.logger.InfoContext(ctx, "onboarding completed", "user_id", userID)
	return finishResult{Wizard: wizard, Completed: true}, nil
}

func (s service) loadDraft(ctx context.Context, userID string) (Wizard, error) {
	wizard, found, err := s.drafts.LoadDraft(ctx, userID)
	if err != nil {
		return Wizard{}, apperrors.Wrap(apperrors.KindUnavailable, "error.web.message.draft_store_unavailable", err)
	}
	if !found {
		return NewWizard(), nil
	}
	return wizard.normalized(), nil
}

// applySubmission merges input rendered for the current step. Posts from a
// stale step are ignored.
func applySubmission(wizard Wizard, sub submission) Wizard {
	if sub.Step != wizard.Step {
		return wizard
	}
	return wizard.Apply(sub.Input)
}

// stepErrorKey names the validation message for the wizard's current step.
func stepErrorKey(wizard Wizard) string {
	if wizard.Step == StepHousehold {
		f := wizard.Form
		name := strings.TrimSpace(f.Name)
		switch {
		case name == "":
			return "onboarding.error.name_required"
		case utf8.RuneCountInString(name) > household.MaxNameLength:
			return "onboarding.error.name_too_long"
		}
		if _, ok := parseHouseholdSize(f.HouseholdSize); !ok {
			return "onboarding.error.household_size_invalid"
		}
		if !f.ResidenceSize.Valid() {
			return "onboarding.error.residence_size_required"
		}
	}
	switch wizard.Step {
	case StepTransportation:
		return "onboarding.error.transportation_required"
	case StepHeating:
		return "onboarding.error.heating_required"
	case StepRecycling:
		return "onboarding.error.recycling_required"
	}
	return "onboarding.error.step_incomplete"
}
