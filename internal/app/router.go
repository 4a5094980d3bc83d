package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/cida-marmitas/marmitas/internal/auth"
	"github.com/cida-marmitas/marmitas/internal/masterdata/catalog"
	"github.com/cida-marmitas/marmitas/internal/masterdata/companies"
	"github.com/cida-marmitas/marmitas/internal/masterdata/employees"
	"github.com/cida-marmitas/marmitas/internal/masterdata/menus"
	"github.com/cida-marmitas/marmitas/internal/masterdata/sectors"
	"github.com/cida-marmitas/marmitas/internal/observability"
	"github.com/cida-marmitas/marmitas/internal/orders"
	"github.com/cida-marmitas/marmitas/internal/reports"
	"github.com/cida-marmitas/marmitas/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	AuthMiddleware auth.Middleware

	AuthHandler      *auth.Handler
	OrdersHandler    *orders.Handler
	ReportsHandler   *reports.Handler
	CompaniesHandler *companies.Handler
	SectorsHandler   *sectors.Handler
	CatalogHandler   *catalog.Handler
	MenusHandler     *menus.Handler
	EmployeesHandler *employees.Handler
	UsersHandler     *users.Handler

	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router with the API defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	mw := params.AuthMiddleware
	r.Route("/api", func(r chi.Router) {
		params.AuthHandler.MountRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(mw.Authenticate)

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireRoles(auth.RoleEmployee))
				params.OrdersHandler.MountEmployeeRoutes(r)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(mw.RequireRoles(auth.RoleAdmin, auth.RoleClient))
					r.Route("/reports", params.ReportsHandler.MountRoutes)
				})

				r.Group(func(r chi.Router) {
					r.Use(mw.RequireRoles(auth.RoleAdmin))
					params.OrdersHandler.MountAdminRoutes(r)
					r.Route("/menus", params.MenusHandler.MountRoutes)
					r.Route("/employees", params.EmployeesHandler.MountRoutes)
					r.Route("/sectors", params.SectorsHandler.MountRoutes)
					r.Route("/companies", params.CompaniesHandler.MountRoutes)
					r.Route("/sizes", params.CatalogHandler.MountSizes)
					r.Route("/extras", params.CatalogHandler.MountExtras)
					r.Route("/users", params.UsersHandler.MountRoutes)
				})
			})
		})
	})

	return r
}
