package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/travel-order-service/internal/api/http/handlers"
	"github.com/spec-kit/travel-order-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Orders         *handlers.OrdersHandler
	Users          *handlers.UsersHandler
	Notifications  *handlers.NotificationsHandler
	AuthMiddleware *auth.AuthMiddleware
	// Metrics is served on /metrics when set.
	Metrics nethttp.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics))
	}

	app.Post("/authenticate", cfg.Auth.Authenticate)

	v1 := app.Group("/v1")
	v1.Post("/users", cfg.Users.Create)

	protected := v1.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/userLogin", cfg.Auth.Login)
	protected.Post("/logout", cfg.Auth.Logout)

	protected.Get("/orders", cfg.Orders.List)
	protected.Post("/orders", cfg.Orders.Create)
	protected.Get("/orders/:id", cfg.Orders.Show)
	protected.Put("/orders/:id", cfg.Orders.Update)
	protected.Patch("/orders/:id", cfg.Orders.Update)
	protected.Delete("/orders/:id", cfg.Orders.Delete)
	protected.Post("/filterOrders", cfg.Orders.Filter)
	protected.Post("/ordersByUser", cfg.Orders.ByUser)

	protected.Get("/users", cfg.Users.List)
	protected.Get("/users/:id", cfg.Users.Show)
	protected.Put("/users/:id", cfg.Users.Update)
	protected.Patch("/users/:id", cfg.Users.Update)
	protected.Delete("/users/:id", cfg.Users.Delete)

	protected.Get("/notifications", cfg.Notifications.List)
	protected.Post("/notifications", cfg.Notifications.Create)
	protected.Get("/notifications/:id", cfg.Notifications.Show)
	protected.Delete("/notifications/:id", cfg.Notifications.Delete)
	protected.Post("/showUserNotifications", cfg.Notifications.ByUser)
}
