package publicauth

import (
	"context"
	"net/http"
	"sync"

	"github.com/ecohome/ecohome/internal/auth/token"
	module "github.com/ecohome/ecohome/internal/services/web/module"
	apperrors "github.com/ecohome/ecohome/internal/services/web/platform/errors"
	"github.com/ecohome/ecohome/internal/services/web/platform/modulehandler"
)

type fakeAuthGateway struct {
	mu       sync.Mutex
	valid    map[string]token.Claims
	signIns  []string
	signErr  error
	issueFor string
}

func newFakeAuthGateway() *fakeAuthGateway {
	return &fakeAuthGateway{
		valid:    map[string]token.Claims{"good-token": {UserID: "user-1", Name: "Ana"}},
		issueFor: "issued-token",
	}
}

func (f *fakeAuthGateway) SignIn(_ context.Context, email string, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signIns = append(f.signIns, email+"|"+name)
	if f.signErr != nil {
		return "", f.signErr
	}
	return f.issueFor, nil
}

func (f *fakeAuthGateway) VerifySession(_ context.Context, rawToken string) (token.Claims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	claims, ok := f.valid[rawToken]
	if !ok {
		return token.Claims{}, token.ErrInvalid
	}
	return claims, nil
}

type downAuthGateway struct{}

func (downAuthGateway) SignIn(context.Context, string, string) (string, error) {
	return "", apperrors.E(apperrors.KindUnavailable, "auth down")
}

func (downAuthGateway) VerifySession(context.Context, string) (token.Claims, error) {
	return token.Claims{}, apperrors.E(apperrors.KindUnavailable, "auth down")
}

func testBase() modulehandler.Base {
	return modulehandler.NewBase(module.Dependencies{
		ResolveLanguage: func(*http.Request) string { return "en-US" },
	})
}

func testHandlers(gateway AuthGateway, devLogin bool) handlers {
	return newHandlers(newService(gateway), testBase(), handlerConfig{devLogin: devLogin})
}
