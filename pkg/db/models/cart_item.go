package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem holds a product snapshot in a user's cart. The ledger keeps at
// most one row per (user_id, product_id); that invariant lives in the cart
// service's consolidation logic, not in a schema constraint.
type CartItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index:idx_cart_items_user"`
	ProductID   string          `gorm:"column:product_id;not null"`
	ProductName string          `gorm:"column:product_name;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Quantity    int             `gorm:"column:quantity;not null"`
}
