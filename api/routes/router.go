package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quickmart/storefront-backend/api/controllers"
	"github.com/quickmart/storefront-backend/api/middleware"
	"github.com/quickmart/storefront-backend/internal/cart"
	"github.com/quickmart/storefront-backend/internal/catalog"
	checkoutsvc "github.com/quickmart/storefront-backend/internal/checkout"
	"github.com/quickmart/storefront-backend/internal/orders"
	"github.com/quickmart/storefront-backend/pkg/config"
	"github.com/quickmart/storefront-backend/pkg/db"
	"github.com/quickmart/storefront-backend/pkg/logger"
	"github.com/quickmart/storefront-backend/pkg/redis"
)

// RouterParams carry everything the HTTP surface depends on. Nil optional
// dependencies (redis, metrics registry) degrade gracefully.
type RouterParams struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Metrics  prometheus.Gatherer
	Catalog  catalog.Service
	Cart     cart.Service
	Orders   orders.Service
	Checkout checkoutsvc.Service
}

func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	var redisP redis.Pinger
	if params.Redis != nil {
		redisP = params.Redis
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, params.DB, redisP))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(params.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.ClientContext(logg))
		if params.Redis != nil {
			r.Use(middleware.Idempotency(params.Redis, logg))
		}

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(params.Catalog, logg))
			r.Get("/featured", controllers.ProductFeatured(params.Catalog, logg))
			r.Get("/price-range", controllers.ProductPriceRange(params.Catalog, logg))
			r.Get("/{productId}", controllers.ProductDetail(params.Catalog, logg))
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoryList(params.Catalog, logg))
			r.Get("/tree", controllers.CategoryTree(params.Catalog, logg))
			r.Get("/{category}/products", controllers.CategoryProducts(params.Catalog, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(params.Cart, logg))
			r.Delete("/", controllers.CartClear(params.Cart, logg))
			r.Post("/items", controllers.CartAddItem(params.Cart, params.Catalog, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateItem(params.Cart, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(params.Cart, logg))
		})

		r.Post("/checkout", controllers.Checkout(params.Checkout, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(params.Orders, logg))
			r.Get("/recent", controllers.OrderRecent(params.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(params.Orders, logg))
			r.Post("/{orderId}/status", controllers.OrderUpdateStatus(params.Orders, logg))
		})
	})

	return r
}
