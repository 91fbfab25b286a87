package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gachpala/shop-backend/api/middleware"
	"github.com/gachpala/shop-backend/api/responses"
	"github.com/gachpala/shop-backend/api/validators"
	"github.com/gachpala/shop-backend/internal/cart"
	pkgerrors "github.com/gachpala/shop-backend/pkg/errors"
	"github.com/gachpala/shop-backend/pkg/logger"
)

type cartPayload struct {
	responses.Base
	Cart []cart.CartItemDTO `json:"cart"`
}

// CartGet returns the user's cart. Guests get an empty cart rather than an
// error so the storefront can render before login.
func CartGet(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middleware.IdentityFromContext(r.Context())
		if identity == nil {
			responses.WriteSuccess(w, cartPayload{Base: responses.OK(""), Cart: []cart.CartItemDTO{}})
			return
		}

		rows, err := svc.List(r.Context(), identity.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart"))
			return
		}
		responses.WriteSuccess(w, cartPayload{Base: responses.OK(""), Cart: cart.FromModels(rows)})
	}
}

// CartAddItem adds one unit of the posted product to the user's cart.
func CartAddItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	type addBody struct {
		Item cart.Item `json:"item" validate:"required"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middleware.IdentityFromContext(r.Context())

		var body addBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.AddItem(r.Context(), identity.UserID, body.Item); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, responses.OK(""))
	}
}

// CartUpdateQuantity applies a signed quantity change to one product. The
// row disappears when the quantity would reach zero; a product missing from
// the cart is a no-op.
func CartUpdateQuantity(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	type updateBody struct {
		Change int `json:"change" validate:"required"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middleware.IdentityFromContext(r.Context())
		productID := chi.URLParam(r, "productID")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id required"))
			return
		}

		var body updateBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UpdateQuantity(r.Context(), identity.UserID, productID, body.Change); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, responses.OK(""))
	}
}

// CartClear removes every item from the user's cart.
func CartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middleware.IdentityFromContext(r.Context())

		if err := svc.Clear(r.Context(), identity.UserID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, responses.OK(""))
	}
}
