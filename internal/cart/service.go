package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/gachpala/shop-backend/pkg/db/models"
	pkgerrors "github.com/gachpala/shop-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Item is the product snapshot sent by the storefront when adding to cart.
type Item struct {
	ID    string          `json:"id" validate:"required"`
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price"`
}

// Service owns the cart ledger: one row per (user, product), quantity
// adjusted in place, rows deleted rather than ever dropping to zero.
type Service interface {
	AddItem(ctx context.Context, userID uuid.UUID, item Item) error
	UpdateQuantity(ctx context.Context, userID uuid.UUID, productID string, delta int) error
	Clear(ctx context.Context, userID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
}

type cartRepository interface {
	Create(ctx context.Context, item *models.CartItem) error
	FindByUserAndProduct(ctx context.Context, userID uuid.UUID, productID string) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo cartRepository
}

// NewService builds the cart service.
func NewService(repo cartRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	return &service{repo: repo}, nil
}

// AddItem adds one unit of the product, consolidating repeated adds into a
// single row with an incremented quantity.
func (s *service) AddItem(ctx context.Context, userID uuid.UUID, item Item) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if item.ID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	existing, err := s.repo.FindByUserAndProduct(ctx, userID, item.ID)
	switch {
	case err == nil:
		if err := s.repo.UpdateQuantity(ctx, existing.ID, existing.Quantity+1); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "increment cart item")
		}
		return nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		row := &models.CartItem{
			UserID:      userID,
			ProductID:   item.ID,
			ProductName: item.Name,
			Price:       item.Price,
			Quantity:    1,
		}
		if err := s.repo.Create(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert cart item")
		}
		return nil

	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart item")
	}
}

// UpdateQuantity applies a signed delta to the row's quantity. Rows never
// survive at zero or below; a missing row is a no-op.
func (s *service) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID string, delta int) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	existing, err := s.repo.FindByUserAndProduct(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart item")
	}

	newQty := existing.Quantity + delta
	if newQty > 0 {
		if err := s.repo.UpdateQuantity(ctx, existing.ID, newQty); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart quantity")
		}
		return nil
	}

	if err := s.repo.Delete(ctx, existing.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove cart item")
	}
	return nil
}

// Clear deletes every row in the user's cart.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if err := s.repo.DeleteByUser(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return nil
}

// List returns the user's cart rows.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart")
	}
	return rows, nil
}
