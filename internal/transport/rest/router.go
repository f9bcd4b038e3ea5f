package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/crm-console/api"
	"github.com/frahmantamala/crm-console/internal/auth"
	"github.com/frahmantamala/crm-console/internal/dashboard"
	"github.com/frahmantamala/crm-console/internal/inventory"
	"github.com/frahmantamala/crm-console/internal/order"
	"github.com/frahmantamala/crm-console/internal/permission"
	"github.com/frahmantamala/crm-console/internal/report"
	"github.com/frahmantamala/crm-console/internal/transport/middleware"
	"github.com/frahmantamala/crm-console/internal/transport/swagger"
	"github.com/frahmantamala/crm-console/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

const APIPrefix = "/console/v1"

// Handlers groups everything the router mounts. Nil handlers leave their
// routes out.
type Handlers struct {
	Health    *HealthHandler
	Auth      *auth.Handler
	Dashboard *dashboard.Handler
	Orders    *order.Handler
	Reports   *report.Handler
	Inventory *inventory.Handler
	Users     *user.Handler
}

func RegisterAllRoutes(router *chi.Mux, handlers Handlers, resolver middleware.TokenResolver, origins []string, logger *slog.Logger) {
	require := func(res permission.Resource, act permission.Action) func(http.Handler) http.Handler {
		return middleware.RequirePermission(res, act, logger)
	}

	router.Use(middleware.CORS(origins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(api.Spec)
	})
	router.Handle("/swagger/*", swagger.Handler("/openapi.yml"))

	router.Route(APIPrefix, func(r chi.Router) {
		if handlers.Health != nil {
			r.Get("/health", handlers.Health.healthCheckHandler)
			r.Get("/ping", handlers.Health.pingHandler)
		}

		if handlers.Auth != nil {
			r.Post("/auth/login", handlers.Auth.Login)
		}

		r.Group(func(pr chi.Router) {
			pr.Use(middleware.Authenticate(resolver, logger))

			if handlers.Auth != nil {
				pr.Post("/auth/logout", handlers.Auth.Logout)
				pr.Get("/auth/me", handlers.Auth.Me)
			}

			if handlers.Dashboard != nil {
				pr.Route("/dashboard", func(dr chi.Router) {
					dr.Use(require(permission.ResourceDashboard, permission.ActionRead))
					dr.Get("/", handlers.Dashboard.GetDashboard)
					dr.Get("/sales", handlers.Dashboard.GetSales)
				})
			}

			pr.Route("/orders", func(or chi.Router) {
				if handlers.Orders != nil {
					or.With(require(permission.ResourceOrders, permission.ActionRead)).Get("/", handlers.Orders.ListOrders)
					or.With(require(permission.ResourceOrders, permission.ActionRead)).Get("/{id}/history", handlers.Orders.History)
					or.With(require(permission.ResourceOrders, permission.ActionWrite)).Patch("/{id}/status", handlers.Orders.UpdateStatus)
				}
				if handlers.Reports != nil {
					or.With(require(permission.ResourceReports, permission.ActionRead)).Get("/export", handlers.Reports.ExportOrders)
				}
			})

			if handlers.Inventory != nil {
				pr.Route("/products", func(ir chi.Router) {
					ir.With(require(permission.ResourceInventory, permission.ActionRead)).Get("/", handlers.Inventory.ListProducts)
					ir.With(require(permission.ResourceInventory, permission.ActionStock)).Post("/{id}/stock", handlers.Inventory.ReceiveStock)

					ir.Group(func(wr chi.Router) {
						wr.Use(require(permission.ResourceInventory, permission.ActionWrite))
						wr.Post("/", handlers.Inventory.CreateProduct)
						wr.Put("/{id}", handlers.Inventory.UpdateProduct)
						wr.Delete("/{id}", handlers.Inventory.DeleteProduct)
					})
				})
			}

			if handlers.Users != nil {
				pr.Route("/users", func(ur chi.Router) {
					ur.With(require(permission.ResourceUsers, permission.ActionRead)).Get("/", handlers.Users.ListUsers)

					ur.Group(func(wr chi.Router) {
						wr.Use(require(permission.ResourceUsers, permission.ActionWrite))
						wr.Post("/", handlers.Users.CreateUser)
						wr.Put("/{id}", handlers.Users.UpdateUser)
						wr.Delete("/{id}", handlers.Users.DeactivateUser)
						wr.Post("/{id}/toggle-active", handlers.Users.ToggleActive)
					})
				})
			}
		})
	})
}
