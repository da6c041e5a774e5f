package publicauth

import (
	"context"
	"net/mail"
	"strings"

	"github.com/ecohome/ecohome/internal/auth/token"
	apperrors "github.com/ecohome/ecohome/internal/services/web/platform/errors"
)

// AuthGateway abstracts session operations behind domain types.
type AuthGateway interface {
	// SignIn derives the user for a login email and returns a session token.
	SignIn(ctx context.Context, email string, name string) (string, error)
	// VerifySession checks a session token and returns its claims.
	VerifySession(ctx context.Context, rawToken string) (token.Claims, error)
}

type service struct {
	auth AuthGateway
}

func newService(gateway AuthGateway) service {
	if gateway == nil {
		gateway = unavailableAuthGateway{}
	}
	return service{auth: gateway}
}

func (service) healthBody() string {
	return "ok"
}

// signIn validates the development sign-in form and returns a session token.
func (s service) signIn(ctx context.Context, email string, name string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", apperrors.EK(apperrors.KindInvalidInput, "auth.error.email_required", "email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return "", apperrors.EK(apperrors.KindInvalidInput, "auth.error.email_required", "email is invalid")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name, _, _ = strings.Cut(addr.Address, "@")
	}
	return s.auth.SignIn(ctx, addr.Address, name)
}

// acceptCallback verifies a provider-issued token before it becomes the session.
func (s service) acceptCallback(ctx context.Context, rawToken string) (string, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return "", apperrors.EK(apperrors.KindUnauthorized, "auth.error.invalid_token", "token is required")
	}
	if _, err := s.auth.VerifySession(ctx, rawToken); err != nil {
		if apperrors.KindOf(err) == apperrors.KindUnavailable {
			return "", err
		}
		return "", apperrors.Wrap(apperrors.KindUnauthorized, "auth.error.invalid_token", err)
	}
	return rawToken, nil
}

func (s service) hasValidSession(ctx context.Context, rawToken string) bool {
	if strings.TrimSpace(rawToken) == "" {
		return false
	}
	_, err := s.auth.VerifySession(ctx, rawToken)
	return err == nil
}
