package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mvillegas/cabstock-backend/api/controllers"
	"github.com/mvillegas/cabstock-backend/api/middleware"
	"github.com/mvillegas/cabstock-backend/internal/activitylog"
	"github.com/mvillegas/cabstock-backend/internal/auth"
	"github.com/mvillegas/cabstock-backend/internal/customers"
	"github.com/mvillegas/cabstock-backend/internal/dashboard"
	"github.com/mvillegas/cabstock-backend/internal/inventory"
	"github.com/mvillegas/cabstock-backend/internal/sales"
	"github.com/mvillegas/cabstock-backend/internal/users"
	"github.com/mvillegas/cabstock-backend/pkg/auth/session"
	"github.com/mvillegas/cabstock-backend/pkg/config"
	"github.com/mvillegas/cabstock-backend/pkg/logger"
	"github.com/mvillegas/cabstock-backend/pkg/metrics"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       controllers.Pinger
	Redis    controllers.Pinger
	Sessions session.AccessSessionChecker

	Auth        auth.Service
	Cabs        inventory.CabService
	Accessories inventory.AccessoryService
	Materials   inventory.MaterialService
	Customers   customers.Service
	Users       users.Service
	Sales       sales.Service
	Dashboard   dashboard.Service
	ActivityLog activitylog.Service

	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.AllowedOrigins),
		middleware.Metrics(d.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": d.DB,
			"redis":    d.Redis,
		}))
	})

	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.Login(d.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, d.Sessions, logg)).Post("/logout", controllers.Logout(d.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))

		r.Route("/cabs", func(r chi.Router) {
			r.Get("/", controllers.CabList(d.Cabs, logg))
			r.Post("/", controllers.CabCreate(d.Cabs, logg))
			r.Get("/{id}", controllers.CabGet(d.Cabs, logg))
			r.Put("/{id}", controllers.CabUpdate(d.Cabs, logg))
			r.Delete("/{id}", controllers.CabDelete(d.Cabs, logg))
			r.Post("/{id}/sell", controllers.SellCab(d.Sales, logg))
		})

		r.Route("/accessories", func(r chi.Router) {
			r.Get("/", controllers.AccessoryList(d.Accessories, logg))
			r.Post("/", controllers.AccessoryCreate(d.Accessories, logg))
			r.Get("/{id}", controllers.AccessoryGet(d.Accessories, logg))
			r.Put("/{id}", controllers.AccessoryUpdate(d.Accessories, logg))
			r.Delete("/{id}", controllers.AccessoryDelete(d.Accessories, logg))
		})

		r.Route("/materials", func(r chi.Router) {
			r.Get("/", controllers.MaterialList(d.Materials, logg))
			r.Get("/paginated", controllers.MaterialListPage(d.Materials, logg))
			r.Post("/", controllers.MaterialCreate(d.Materials, logg))
			r.Get("/{id}", controllers.MaterialGet(d.Materials, logg))
			r.Put("/{id}", controllers.MaterialUpdate(d.Materials, logg))
			r.Delete("/{id}", controllers.MaterialDelete(d.Materials, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.CustomerList(d.Customers, logg))
			r.Post("/", controllers.CustomerCreate(d.Customers, logg))
			r.Get("/{id}", controllers.CustomerGet(d.Customers, logg))
			r.Put("/{id}", controllers.CustomerUpdate(d.Customers, logg))
			r.Delete("/{id}", controllers.CustomerDelete(d.Customers, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireRole("admin", logg))
			r.Get("/", controllers.UserList(d.Users, logg))
			r.Post("/", controllers.UserCreate(d.Users, logg))
			r.Get("/{id}", controllers.UserGet(d.Users, logg))
			r.Put("/{id}", controllers.UserUpdate(d.Users, logg))
			r.Delete("/{id}", controllers.UserDelete(d.Users, logg))
		})

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", controllers.SaleList(d.Sales, logg))
			r.Get("/{id}", controllers.SaleGet(d.Sales, logg))
		})

		r.Get("/dashboard/summary", controllers.DashboardSummary(d.Dashboard, logg))

		r.Route("/activity-logs", func(r chi.Router) {
			r.Get("/", controllers.ActivityLogList(d.ActivityLog, logg))
			r.Post("/", controllers.ActivityLogRecord(d.ActivityLog, logg))
		})
	})

	return r
}
