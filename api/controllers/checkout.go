package controllers

import (
	"net/http"

	"github.com/gachpala/shop-backend/api/middleware"
	"github.com/gachpala/shop-backend/api/responses"
	"github.com/gachpala/shop-backend/internal/checkout"
	"github.com/gachpala/shop-backend/pkg/logger"
	"github.com/google/uuid"
)

const orderPlacedMessage = "Order placed successfully!"

// Checkout converts the user's cart into a single order group.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	type checkoutPayload struct {
		responses.Base
		OrderGroupID uuid.UUID `json:"order_group_id"`
		ItemCount    int       `json:"item_count"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middleware.IdentityFromContext(r.Context())

		result, err := svc.Execute(r.Context(), identity.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, checkoutPayload{
			Base:         responses.OK(orderPlacedMessage),
			OrderGroupID: result.OrderGroupID,
			ItemCount:    result.ItemCount,
		})
	}
}
