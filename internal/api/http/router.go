package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pawup/shelter-api/internal/api/http/handlers"
	"github.com/pawup/shelter-api/internal/auth"
	"github.com/pawup/shelter-api/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Animals        *handlers.AnimalsHandler
	Associations   *handlers.AssociationsHandler
	AuthMiddleware *auth.AuthMiddleware
	// Gatherer backs /metrics. Nil leaves the endpoint unregistered.
	Gatherer prometheus.Gatherer
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	gate := cfg.AuthMiddleware.Handle
	admin := auth.RequireAccess(domain.AccessAdmin)

	app.Post("/signup", cfg.Auth.Signup)
	app.Post("/login", cfg.Auth.Login)
	app.Get("/logout", cfg.Auth.Logout)
	app.Post("/logout", cfg.Auth.Logout)
	app.Get("/getJwt", gate, cfg.Auth.WhoAmI)
	app.Get("/whoami", gate, cfg.Auth.WhoAmI)

	app.Get("/user/:id", gate, cfg.Users.Get)
	app.Get("/manageUsers", gate, admin, cfg.Users.List)
	app.Put("/update-user/:id", gate, admin, cfg.Users.UpdateAccess)
	app.Delete("/delete-user/:id", gate, admin, cfg.Users.Delete)

	app.Get("/api/newest", cfg.Animals.Newest)
	app.Get("/allAnimals", cfg.Animals.List)
	app.Get("/animal/:id", cfg.Animals.Get)
	app.Post("/addAnimal", gate, admin, cfg.Animals.Create)
	app.Put("/update-animal/:id", gate, admin, cfg.Animals.Update)
	app.Delete("/delete-animal/:id", gate, admin, cfg.Animals.Delete)

	app.Post("/api/addAsso", gate, cfg.Associations.Create)
	app.Get("/api/assos", cfg.Associations.List)
}
