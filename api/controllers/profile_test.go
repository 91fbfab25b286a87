package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gachpala/shop-backend/api/middleware"
	"github.com/gachpala/shop-backend/internal/orders"
	"github.com/gachpala/shop-backend/pkg/db/models"
	"github.com/gachpala/shop-backend/pkg/session"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubOrderStore struct {
	rows []models.Order
	err  error
}

func (s stubOrderStore) WithTx(tx *gorm.DB) orders.Store { return s }

func (s stubOrderStore) CreateAll(ctx context.Context, rows []models.Order) error { return nil }

func (s stubOrderStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.rows, s.err
}

func (s stubOrderStore) CountByGroup(ctx context.Context, groupID uuid.UUID) (int64, error) {
	return 0, nil
}

func TestProfileReturnsNameAndOrders(t *testing.T) {
	userID := uuid.New()
	store := stubOrderStore{rows: []models.Order{{
		ID:           uuid.New(),
		OrderGroupID: uuid.New(),
		UserID:       userID,
		ProductName:  "Fern",
		Quantity:     2,
		PricePerItem: decimal.RequireFromString("5.00"),
		OrderedAt:    time.Now().UTC(),
	}}}
	handler := Profile(store, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(),
		&session.Identity{UserID: userID, Name: "Ann"}))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var body struct {
		baseBody
		User   userPayload       `json:"user"`
		Orders []orders.OrderDTO `json:"orders"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.User.Name != "Ann" {
		t.Fatalf("unexpected user %+v", body.User)
	}
	if len(body.Orders) != 1 || body.Orders[0].ProductName != "Fern" {
		t.Fatalf("unexpected orders %v", body.Orders)
	}
}

func TestProfileWithNoOrders(t *testing.T) {
	handler := Profile(stubOrderStore{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(),
		&session.Identity{UserID: uuid.New(), Name: "Ann"}))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var body struct {
		Orders []orders.OrderDTO `json:"orders"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Orders == nil || len(body.Orders) != 0 {
		t.Fatalf("expected empty orders array, got %v", body.Orders)
	}
}
