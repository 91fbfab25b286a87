package orders

import (
	"context"

	"github.com/gachpala/shop-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is the persistence surface for the order history.
type Store interface {
	WithTx(tx *gorm.DB) Store
	CreateAll(ctx context.Context, rows []models.Order) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	CountByGroup(ctx context.Context, groupID uuid.UUID) (int64, error)
}
