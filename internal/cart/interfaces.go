package cart

import (
	"context"

	"github.com/gachpala/shop-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is the persistence surface the cart and checkout services build on.
type Store interface {
	WithTx(tx *gorm.DB) Store
	Create(ctx context.Context, item *models.CartItem) error
	FindByUserAndProduct(ctx context.Context, userID uuid.UUID, productID string) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
