package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is one line of a placed order. Every checkout produces one row per
// distinct cart item, all sharing an order_group_id. Rows are append-only and
// never deleted by this system.
type Order struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderGroupID uuid.UUID       `gorm:"column:order_group_id;type:uuid;not null;index:idx_orders_group"`
	UserID       uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index:idx_orders_user"`
	ProductName  string          `gorm:"column:product_name;not null"`
	Quantity     int             `gorm:"column:quantity;not null"`
	PricePerItem decimal.Decimal `gorm:"column:price_per_item;type:numeric(10,2);not null"`
	OrderedAt    time.Time       `gorm:"column:ordered_at;not null"`
}
