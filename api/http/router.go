package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/roster/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, health *handlers.HealthHandler, members *handlers.MemberHandler) {
	api := app.Group("/api")

	// Health and readiness endpoints for probes/monitoring
	api.Get("/health", health.Health)
	api.Get("/ready", health.Ready)

	m := api.Group("/members")
	m.Get("/", members.List)
	m.Get("/:id", members.GetByID)
	m.Post("/", members.Create)
}
