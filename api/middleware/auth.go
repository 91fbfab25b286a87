package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gachpala/shop-backend/api/responses"
	"github.com/gachpala/shop-backend/pkg/config"
	pkgerrors "github.com/gachpala/shop-backend/pkg/errors"
	"github.com/gachpala/shop-backend/pkg/logger"
	"github.com/gachpala/shop-backend/pkg/session"
)

const notAuthenticatedMessage = "Not authenticated."

// SessionChecker resolves an opaque session token to the user behind it.
type SessionChecker interface {
	Lookup(ctx context.Context, token string) (*session.Identity, error)
}

// RequireSession rejects requests without a live session. The message is
// returned verbatim on the 401 so each route can phrase its own prompt.
func RequireSession(sessions SessionChecker, cfg config.SessionConfig, logg *logger.Logger, message string) func(http.Handler) http.Handler {
	if message == "" {
		message = notAuthenticatedMessage
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := resolveSession(r, sessions, cfg)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
				return
			}
			if identity == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, message))
				return
			}

			ctx := WithIdentity(r.Context(), identity)
			if logg != nil {
				ctx = logg.WithUserID(ctx, identity.UserID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalSession seeds the context with the user when a live session exists
// and lets the request through as a guest otherwise. A session store outage
// also degrades to guest so read-only routes stay up.
func OptionalSession(sessions SessionChecker, cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := resolveSession(r, sessions, cfg)
			if err != nil {
				if logg != nil {
					logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "session.lookup_failed")
				}
				next.ServeHTTP(w, r)
				return
			}
			if identity == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithIdentity(r.Context(), identity)
			if logg != nil {
				ctx = logg.WithUserID(ctx, identity.UserID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// resolveSession returns (nil, nil) for guests: no cookie or a dead token.
func resolveSession(r *http.Request, sessions SessionChecker, cfg config.SessionConfig) (*session.Identity, error) {
	cookie, err := r.Cookie(cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}
	identity, err := sessions.Lookup(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return nil, nil
		}
		return nil, err
	}
	return identity, nil
}
