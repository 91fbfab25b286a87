package controllers

import (
	"net/http"

	"github.com/gachpala/shop-backend/api/middleware"
	"github.com/gachpala/shop-backend/api/responses"
	"github.com/gachpala/shop-backend/internal/orders"
	pkgerrors "github.com/gachpala/shop-backend/pkg/errors"
	"github.com/gachpala/shop-backend/pkg/logger"
)

// Profile returns the user's name and full order history, newest first.
func Profile(repo orders.Store, logg *logger.Logger) http.HandlerFunc {
	type profilePayload struct {
		responses.Base
		User   userPayload       `json:"user"`
		Orders []orders.OrderDTO `json:"orders"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middleware.IdentityFromContext(r.Context())

		rows, err := repo.ListByUser(r.Context(), identity.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders"))
			return
		}

		responses.WriteSuccess(w, profilePayload{
			Base:   responses.OK(""),
			User:   userPayload{Name: identity.Name},
			Orders: orders.FromModels(rows),
		})
	}
}
