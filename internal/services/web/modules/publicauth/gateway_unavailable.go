package publicauth

import (
	"context"

	"github.com/ecohome/ecohome/internal/auth/token"
	apperrors "github.com/ecohome/ecohome/internal/services/web/platform/errors"
)

type unavailableAuthGateway struct{}

func (unavailableAuthGateway) SignIn(context.Context, string, string) (string, error) {
	return "", apperrors.E(apperrors.KindUnavailable, "auth service is not configured")
}

func (unavailableAuthGateway) VerifySession(context.Context, string) (token.Claims, error) {
	return token.Claims{}, apperrors.E(apperrors.KindUnavailable, "auth service is not configured")
}
