package orders

import (
	"time"

	"github.com/gachpala/shop-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the transport shape of one order history row.
type OrderDTO struct {
	ID           uuid.UUID       `json:"id"`
	OrderGroupID uuid.UUID       `json:"order_group_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	PricePerItem decimal.Decimal `json:"price_per_item"`
	OrderedAt    time.Time       `json:"ordered_at"`
}

// FromModels converts order rows for the API layer.
func FromModels(rows []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, OrderDTO{
			ID:           row.ID,
			OrderGroupID: row.OrderGroupID,
			ProductName:  row.ProductName,
			Quantity:     row.Quantity,
			PricePerItem: row.PricePerItem,
			OrderedAt:    row.OrderedAt,
		})
	}
	return out
}
