package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/gachpala/shop-backend/api/middleware"
	cartsvc "github.com/gachpala/shop-backend/internal/cart"
	"github.com/gachpala/shop-backend/pkg/db/models"
	"github.com/gachpala/shop-backend/pkg/session"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type stubCartService struct {
	rows    []models.CartItem
	listErr error

	added   []cartsvc.Item
	updates []int
	cleared int
}

func (s *stubCartService) AddItem(ctx context.Context, userID uuid.UUID, item cartsvc.Item) error {
	s.added = append(s.added, item)
	return nil
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID string, delta int) error {
	s.updates = append(s.updates, delta)
	return nil
}

func (s *stubCartService) Clear(ctx context.Context, userID uuid.UUID) error {
	s.cleared++
	return nil
}

func (s *stubCartService) List(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	return s.rows, s.listErr
}

func withUser(req *http.Request) *http.Request {
	return req.WithContext(middleware.WithIdentity(req.Context(),
		&session.Identity{UserID: uuid.New(), Name: "Ann"}))
}

func TestCartGetForGuestIsEmptySuccess(t *testing.T) {
	handler := CartGet(&stubCartService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var body struct {
		baseBody
		Cart []cartsvc.CartItemDTO `json:"cart"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success {
		t.Fatalf("guests must still get success=true")
	}
	if body.Cart == nil || len(body.Cart) != 0 {
		t.Fatalf("expected empty cart array, got %v", body.Cart)
	}
}

func TestCartGetReturnsRows(t *testing.T) {
	svc := &stubCartService{rows: []models.CartItem{{
		ID:          uuid.New(),
		ProductID:   "plant-1",
		ProductName: "Fern",
		Price:       decimal.RequireFromString("5.00"),
		Quantity:    2,
	}}}
	handler := CartGet(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, withUser(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)))

	var body struct {
		baseBody
		Cart []cartsvc.CartItemDTO `json:"cart"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Cart) != 1 || body.Cart[0].ProductID != "plant-1" || body.Cart[0].Quantity != 2 {
		t.Fatalf("unexpected cart %v", body.Cart)
	}
}

func TestCartAddItem(t *testing.T) {
	svc := &stubCartService{}
	handler := CartAddItem(svc, nil)

	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items",
		strings.NewReader(`{"item":{"id":"plant-1","name":"Fern","price":"5.00"}}`)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if len(svc.added) != 1 || svc.added[0].ID != "plant-1" {
		t.Fatalf("expected add call, got %v", svc.added)
	}
}

func TestCartAddItemRejectsMissingItem(t *testing.T) {
	svc := &stubCartService{}
	handler := CartAddItem(svc, nil)

	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{}`)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if len(svc.added) != 0 {
		t.Fatalf("service must not be called")
	}
}

func TestCartUpdateQuantity(t *testing.T) {
	svc := &stubCartService{}
	handler := CartUpdateQuantity(svc, nil)

	router := chi.NewRouter()
	router.Patch("/cart/items/{productID}", handler)

	req := withUser(httptest.NewRequest(http.MethodPatch, "/cart/items/plant-1",
		strings.NewReader(`{"change":-1}`)))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if len(svc.updates) != 1 || svc.updates[0] != -1 {
		t.Fatalf("expected delta -1, got %v", svc.updates)
	}
}

func TestCartClear(t *testing.T) {
	svc := &stubCartService{}
	handler := CartClear(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, withUser(httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil)))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.cleared != 1 {
		t.Fatalf("expected one clear call, got %d", svc.cleared)
	}
}
