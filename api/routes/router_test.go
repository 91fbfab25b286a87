package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gachpala/shop-backend/internal/auth"
	cartsvc "github.com/gachpala/shop-backend/internal/cart"
	"github.com/gachpala/shop-backend/internal/checkout"
	"github.com/gachpala/shop-backend/internal/orders"
	"github.com/gachpala/shop-backend/pkg/config"
	"github.com/gachpala/shop-backend/pkg/db/models"
	pkgerrors "github.com/gachpala/shop-backend/pkg/errors"
	"github.com/gachpala/shop-backend/pkg/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubSessionManager struct {
	identity *session.Identity
}

func (s stubSessionManager) Lookup(ctx context.Context, token string) (*session.Identity, error) {
	if s.identity == nil {
		return nil, session.ErrNoSession
	}
	return s.identity, nil
}

func (stubSessionManager) Destroy(ctx context.Context, token string) error { return nil }

type stubAuthService struct{}

func (stubAuthService) Signup(ctx context.Context, req auth.SignupRequest) error { return nil }

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResult, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid email or password.")
}

type stubCartService struct{}

func (stubCartService) AddItem(ctx context.Context, userID uuid.UUID, item cartsvc.Item) error {
	return nil
}

func (stubCartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID string, delta int) error {
	return nil
}

func (stubCartService) Clear(ctx context.Context, userID uuid.UUID) error { return nil }

func (stubCartService) List(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	return nil, nil
}

type stubCheckoutService struct{}

func (stubCheckoutService) Execute(ctx context.Context, userID uuid.UUID) (*checkout.Result, error) {
	return &checkout.Result{OrderGroupID: uuid.New(), ItemCount: 1}, nil
}

type stubOrderStore struct{}

func (s stubOrderStore) WithTx(tx *gorm.DB) orders.Store { return s }

func (stubOrderStore) CreateAll(ctx context.Context, rows []models.Order) error { return nil }

func (stubOrderStore) CountByGroup(ctx context.Context, id uuid.UUID) (int64, error) {
	return 0, nil
}

func (stubOrderStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Env: config.AppEnvDev},
		Session: config.SessionConfig{CookieName: "gachpala_session", TTLMinutes: 60},
	}
}

func newTestRouter(sessions sessionManager) http.Handler {
	return NewRouter(Deps{
		Config:          testConfig(),
		DB:              stubPinger{},
		Sessions:        sessions,
		AuthService:     stubAuthService{},
		CartService:     stubCartService{},
		CheckoutService: stubCheckoutService{},
		OrdersRepo:      stubOrderStore{},
	})
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter(stubSessionManager{})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRouterGuestCartIsOpen(t *testing.T) {
	router := newTestRouter(stubSessionManager{})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRouterCartMutationsNeedSession(t *testing.T) {
	router := newTestRouter(stubSessionManager{})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/cart/items",
		strings.NewReader(`{"item":{"id":"p","name":"n","price":"1.00"}}`)))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Message != "Please log in to add items to your cart." {
		t.Fatalf("unexpected message %q", body.Message)
	}
}

func TestRouterCheckoutNeedsSession(t *testing.T) {
	router := newTestRouter(stubSessionManager{})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Message != "Please log in to check out." {
		t.Fatalf("unexpected message %q", body.Message)
	}
}

func TestRouterAuthedCheckoutFlows(t *testing.T) {
	router := newTestRouter(stubSessionManager{
		identity: &session.Identity{UserID: uuid.New(), Name: "Ann"},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	req.AddCookie(&http.Cookie{Name: "gachpala_session", Value: "token"})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Message != "Order placed successfully!" {
		t.Fatalf("unexpected message %q", body.Message)
	}
}

func TestRouterProfileNeedsSession(t *testing.T) {
	router := newTestRouter(stubSessionManager{})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Message != "Not authenticated." {
		t.Fatalf("unexpected message %q", body.Message)
	}
}

func TestRouterSessionCheckForGuest(t *testing.T) {
	router := newTestRouter(stubSessionManager{})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var body struct {
		Success  bool `json:"success"`
		LoggedIn bool `json:"loggedIn"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success || body.LoggedIn {
		t.Fatalf("unexpected body %+v", body)
	}
}
