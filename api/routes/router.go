package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adaezeumeh/thriftline-backend/api/controllers"
	"github.com/adaezeumeh/thriftline-backend/api/middleware"
	"github.com/adaezeumeh/thriftline-backend/internal/accounts"
	cartsvc "github.com/adaezeumeh/thriftline-backend/internal/cart"
	"github.com/adaezeumeh/thriftline-backend/internal/catalog"
	"github.com/adaezeumeh/thriftline-backend/pkg/auth/session"
	"github.com/adaezeumeh/thriftline-backend/pkg/config"
	"github.com/adaezeumeh/thriftline-backend/pkg/enums"
	"github.com/adaezeumeh/thriftline-backend/pkg/logger"
	"github.com/adaezeumeh/thriftline-backend/pkg/metrics"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Sessions session.Checker
	Metrics  *metrics.HTTPMetrics
	Registry prometheus.Gatherer

	// Readiness probes keyed by dependency name; nil entries are skipped.
	Probes map[string]controllers.Pinger

	Catalog  catalog.Service
	Cart     cartsvc.Service
	Accounts accounts.Service
}

// NewRouter assembles the full HTTP surface.
func NewRouter(deps Deps) http.Handler {
	cfg, logg := deps.Config, deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Probes))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(deps.Catalog, logg))
		r.Get("/products/{productId}", controllers.GetProduct(deps.Catalog, logg))
		r.Get("/categories", controllers.ListCategories(deps.Catalog, logg))
		r.Get("/trending", controllers.Trending(deps.Catalog, logg))
		r.With(middleware.OptionalAuth(cfg.JWT, deps.Sessions, logg)).
			Get("/recommendations", controllers.Recommendations(deps.Catalog, logg))

		r.Post("/register", controllers.Register(deps.Accounts, logg))
		r.Post("/login", controllers.Login(deps.Accounts, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

			r.Post("/logout", controllers.Logout(deps.Accounts, logg))
			r.Get("/user", controllers.CurrentUser(deps.Accounts, logg))

			r.Post("/products", controllers.CreateProduct(deps.Catalog, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.Cart, logg))
				r.Post("/", controllers.CartAdd(deps.Cart, logg))
				r.Put("/{itemId}", controllers.CartUpdate(deps.Cart, logg))
				r.Delete("/{itemId}", controllers.CartRemove(deps.Cart, logg))
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireRole(enums.UserRoleAdmin.String(), logg))

				r.Post("/products", controllers.AdminCreateProduct(deps.Catalog, logg))
				r.Patch("/products/{productId}", controllers.AdminUpdateProduct(deps.Catalog, logg))
				r.Delete("/products/{productId}", controllers.AdminDeleteProduct(deps.Catalog, logg))
				r.Post("/categories", controllers.AdminCreateCategory(deps.Catalog, logg))
			})
		})
	})

	return r
}
