// Package webctx carries the resolved user id through request contexts so
// services can log and trace without reaching back into the request.
package webctx

import (
	"context"
	"net/http"
	"strings"

	module "github.com/ecohome/ecohome/internal/services/web/module"
)

type userIDKey struct{}

// WithUserID returns ctx carrying userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserID returns the user id stored in ctx.
func UserID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	userID, _ := ctx.Value(userIDKey{}).(string)
	return userID
}

// WithResolvedUserID returns the request context enriched with the resolved user id.
func WithResolvedUserID(r *http.Request, resolve module.ResolveUserID) context.Context {
	if r == nil {
		return context.Background()
	}
	ctx := r.Context()
	if resolve == nil {
		return ctx
	}
	return WithUserID(ctx, resolve(r))
}
