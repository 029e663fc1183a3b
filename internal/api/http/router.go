package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/suraksha-setu/relief-service/internal/api/http/handlers"
	"github.com/suraksha-setu/relief-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Incidents      *handlers.IncidentsHandler
	Resources      *handlers.ResourcesHandler
	Volunteers     *handlers.VolunteersHandler
	Broadcasts     *handlers.BroadcastsHandler
	Safety         *handlers.SafetyHandler
	AuthMiddleware *auth.AuthMiddleware
	UploadDir      string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	if cfg.UploadDir != "" {
		app.Static("/uploads", cfg.UploadDir)
	}

	api := app.Group("/api")

	users := api.Group("/users")
	users.Post("/register", cfg.Users.Register)
	users.Post("/login", cfg.Users.Login)
	users.Get("/profile", cfg.AuthMiddleware.Handle, cfg.Users.GetProfile)
	users.Put("/profile", cfg.AuthMiddleware.Handle, cfg.Users.UpdateProfile)
	users.Get("/", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Users.ListUsers)
	users.Put("/:id/status", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Users.UpdateUserStatus)

	incidents := api.Group("/incidents", cfg.AuthMiddleware.Handle)
	incidents.Post("/", cfg.Incidents.Create)
	incidents.Get("/", cfg.Incidents.List)
	incidents.Put("/:id/status", auth.RequireAdmin(), cfg.Incidents.UpdateStatus)
	incidents.Put("/:id/assign", cfg.Incidents.Assign)

	resources := api.Group("/resources", cfg.AuthMiddleware.Handle)
	resources.Post("/", auth.RequireAdmin(), cfg.Resources.Create)
	resources.Get("/", cfg.Resources.List)
	resources.Put("/:id", auth.RequireAdmin(), cfg.Resources.Update)

	volunteers := api.Group("/volunteers", cfg.AuthMiddleware.Handle)
	volunteers.Get("/my-incidents", auth.RequireVolunteer(), cfg.Volunteers.MyIncidents)
	volunteers.Put("/availability", auth.RequireVolunteer(), cfg.Volunteers.UpdateAvailability)
	volunteers.Get("/available", auth.RequireAdmin(), cfg.Volunteers.Available)

	broadcasts := api.Group("/broadcasts", cfg.AuthMiddleware.Handle)
	broadcasts.Post("/", auth.RequireAdmin(), cfg.Broadcasts.Create)
	broadcasts.Get("/", cfg.Broadcasts.List)

	safety := api.Group("/safety", cfg.AuthMiddleware.Handle)
	safety.Post("/", cfg.Safety.Create)
	safety.Get("/history", cfg.Safety.History)
}
