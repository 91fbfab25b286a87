package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gachpala/shop-backend/api/controllers"
	"github.com/gachpala/shop-backend/api/middleware"
	"github.com/gachpala/shop-backend/internal/auth"
	"github.com/gachpala/shop-backend/internal/cart"
	checkoutsvc "github.com/gachpala/shop-backend/internal/checkout"
	"github.com/gachpala/shop-backend/internal/orders"
	"github.com/gachpala/shop-backend/pkg/config"
	"github.com/gachpala/shop-backend/pkg/db"
	"github.com/gachpala/shop-backend/pkg/logger"
	"github.com/gachpala/shop-backend/pkg/metrics"
	redisclient "github.com/gachpala/shop-backend/pkg/redis"
)

type sessionManager interface {
	middleware.SessionChecker
	Destroy(ctx context.Context, token string) error
}

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           *redisclient.Client
	Sessions        sessionManager
	AuthService     auth.Service
	CartService     cart.Service
	CheckoutService checkoutsvc.Service
	OrdersRepo      orders.Store
	Metrics         *metrics.HTTPMetrics
	PromRegistry    *prometheus.Registry
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.Metrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, d.DB, d.Redis, logg))
	})

	if d.PromRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.PromRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", controllers.AuthSignup(d.AuthService, logg))
			r.Post("/login", controllers.AuthLogin(d.AuthService, cfg.Session, logg))
			r.Post("/logout", controllers.AuthLogout(d.Sessions, cfg.Session, logg))
			r.With(middleware.OptionalSession(d.Sessions, cfg.Session, logg)).
				Get("/session", controllers.AuthSessionCheck())
		})

		r.Route("/cart", func(r chi.Router) {
			r.With(middleware.OptionalSession(d.Sessions, cfg.Session, logg)).
				Get("/", controllers.CartGet(d.CartService, logg))
			r.With(middleware.RequireSession(d.Sessions, cfg.Session, logg, "Please log in to add items to your cart.")).
				Post("/items", controllers.CartAddItem(d.CartService, logg))
			r.With(middleware.RequireSession(d.Sessions, cfg.Session, logg, "")).
				Patch("/items/{productID}", controllers.CartUpdateQuantity(d.CartService, logg))
			r.With(middleware.RequireSession(d.Sessions, cfg.Session, logg, "")).
				Delete("/", controllers.CartClear(d.CartService, logg))
		})

		r.With(middleware.RequireSession(d.Sessions, cfg.Session, logg, "Please log in to check out.")).
			Post("/checkout", controllers.Checkout(d.CheckoutService, logg))

		r.With(middleware.RequireSession(d.Sessions, cfg.Session, logg, "")).
			Get("/profile", controllers.Profile(d.OrdersRepo, logg))
	})

	return r
}
