package cart

import (
	"github.com/gachpala/shop-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItemDTO is the transport shape of one cart row.
type CartItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// FromModels converts cart rows for the API layer.
func FromModels(rows []models.CartItem) []CartItemDTO {
	out := make([]CartItemDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, CartItemDTO{
			ID:          row.ID,
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Price:       row.Price,
			Quantity:    row.Quantity,
		})
	}
	return out
}
