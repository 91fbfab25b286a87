package middleware

import (
	"context"

	"github.com/gachpala/shop-backend/pkg/session"
)

type contextKey string

const ctxIdentity contextKey = "identity"

// IdentityFromContext returns the authenticated user seeded by the session
// middleware, or nil for guest requests.
func IdentityFromContext(ctx context.Context) *session.Identity {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxIdentity).(*session.Identity); ok {
		return v
	}
	return nil
}

// WithIdentity injects the authenticated user into the context.
func WithIdentity(ctx context.Context, identity *session.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxIdentity, identity)
}
