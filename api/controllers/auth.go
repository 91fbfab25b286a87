package controllers

import (
	"context"
	"net/http"

	"github.com/gachpala/shop-backend/api/middleware"
	"github.com/gachpala/shop-backend/api/responses"
	"github.com/gachpala/shop-backend/api/validators"
	"github.com/gachpala/shop-backend/internal/auth"
	"github.com/gachpala/shop-backend/pkg/config"
	pkgerrors "github.com/gachpala/shop-backend/pkg/errors"
	"github.com/gachpala/shop-backend/pkg/logger"
)

const (
	signupSuccessMessage = "Signup successful! You can now log in."
	loginSuccessMessage  = "Login successful!"
	logoutSuccessMessage = "Logged out successfully."
)

type sessionDestroyer interface {
	Destroy(ctx context.Context, token string) error
}

type userPayload struct {
	Name string `json:"name"`
}

// AuthSignup creates a new account. It does not log the user in.
func AuthSignup(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.SignupRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Signup(r.Context(), body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, responses.OK(signupSuccessMessage))
	}
}

// AuthLogin verifies credentials and sets the session cookie.
func AuthLogin(svc auth.Service, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		setSessionCookie(w, cfg, result.Token)
		responses.WriteSuccess(w, struct {
			responses.Base
			User userPayload `json:"user"`
		}{
			Base: responses.OK(loginSuccessMessage),
			User: userPayload{Name: result.User.Name},
		})
	}
}

// AuthLogout drops the server-side session and expires the cookie. Calling
// it without a session still succeeds.
func AuthLogout(sessions sessionDestroyer, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(cfg.CookieName); err == nil && cookie.Value != "" {
			if err := sessions.Destroy(r.Context(), cookie.Value); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "destroy session"))
				return
			}
		}

		clearSessionCookie(w, cfg)
		responses.WriteSuccess(w, responses.OK(logoutSuccessMessage))
	}
}

// AuthSessionCheck reports whether the request carries a live session. It
// never fails: a guest simply gets loggedIn=false.
func AuthSessionCheck() http.HandlerFunc {
	type sessionPayload struct {
		responses.Base
		LoggedIn bool         `json:"loggedIn"`
		User     *userPayload `json:"user,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middleware.IdentityFromContext(r.Context())
		if identity == nil {
			responses.WriteSuccess(w, sessionPayload{Base: responses.OK(""), LoggedIn: false})
			return
		}
		responses.WriteSuccess(w, sessionPayload{
			Base:     responses.OK(""),
			LoggedIn: true,
			User:     &userPayload{Name: identity.Name},
		})
	}
}

func setSessionCookie(w http.ResponseWriter, cfg config.SessionConfig, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.TTL().Seconds()),
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, cfg config.SessionConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
