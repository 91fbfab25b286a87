package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gachpala/shop-backend/internal/cart"
	"github.com/gachpala/shop-backend/internal/orders"
	"github.com/gachpala/shop-backend/pkg/db/models"
	pkgerrors "github.com/gachpala/shop-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	emptyCartMessage      = "Your cart is empty."
	checkoutFailedMessage = "Failed to place order."
	checkoutBusyMessage   = "Another checkout is already in progress."
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service executes checkout orchestration.
type Service interface {
	Execute(ctx context.Context, userID uuid.UUID) (*Result, error)
}

// Result describes one completed checkout.
type Result struct {
	OrderGroupID uuid.UUID `json:"order_group_id"`
	ItemCount    int       `json:"item_count"`
}

type service struct {
	tx         txRunner
	cartRepo   cart.Store
	ordersRepo orders.Store
	locks      UserLock
	now        func() time.Time
}

// NewService builds the checkout service.
func NewService(tx txRunner, cartRepo cart.Store, ordersRepo orders.Store, locks UserLock) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if locks == nil {
		return nil, fmt.Errorf("user lock required")
	}
	return &service{
		tx:         tx,
		cartRepo:   cartRepo,
		ordersRepo: ordersRepo,
		locks:      locks,
		now:        time.Now,
	}, nil
}

// Execute converts the user's cart into one order group and empties the cart
// in a single transaction. Checkouts for the same user run one at a time.
func (s *service) Execute(ctx context.Context, userID uuid.UUID) (*Result, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	acquired, err := s.locks.Acquire(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, checkoutFailedMessage).Public()
	}
	if !acquired {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, checkoutBusyMessage)
	}
	defer func() {
		_ = s.locks.Release(context.WithoutCancel(ctx), userID)
	}()

	var result *Result
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		ordersRepo := s.ordersRepo.WithTx(tx)

		items, err := cartRepo.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, emptyCartMessage)
		}

		groupID := uuid.New()
		orderedAt := s.now().UTC()
		rows := make([]models.Order, 0, len(items))
		for _, item := range items {
			rows = append(rows, models.Order{
				OrderGroupID: groupID,
				UserID:       userID,
				ProductName:  item.ProductName,
				Quantity:     item.Quantity,
				PricePerItem: item.Price,
				OrderedAt:    orderedAt,
			})
		}
		if err := ordersRepo.CreateAll(ctx, rows); err != nil {
			return err
		}
		if err := cartRepo.DeleteByUser(ctx, userID); err != nil {
			return err
		}

		result = &Result{OrderGroupID: groupID, ItemCount: len(rows)}
		return nil
	})
	if err != nil {
		var typed *pkgerrors.Error
		if errors.As(err, &typed) {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, checkoutFailedMessage).Public()
	}
	return result, nil
}
