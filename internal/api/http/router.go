package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cookfarm/pantry-service/internal/api/http/handlers"
	"github.com/cookfarm/pantry-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	BasePath       string
	RequireToken   bool
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Ingredients    *handlers.IngredientsHandler
	Calendar       *handlers.CalendarHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Probes stay at the root; the API is mounted under BasePath.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	api := app.Group(cfg.BasePath)
	caller := cfg.AuthMiddleware.For(cfg.RequireToken)

	users := api.Group("/users")
	users.Post("/register", cfg.Users.Register)
	users.Post("/login", cfg.Users.Login)
	users.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Users.Logout)

	ingredients := api.Group("/ingredients", caller)
	ingredients.Get("/all", cfg.Ingredients.ListAll)
	ingredients.Get("/search", cfg.Ingredients.Search)
	ingredients.Post("/add/:userId", auth.RequireOwner("userId"), cfg.Ingredients.Add)
	ingredients.Get("/user/:userId", auth.RequireOwner("userId"), cfg.Ingredients.ListByUser)
	ingredients.Put("/:ingredientId", cfg.Ingredients.Update)
	ingredients.Delete("/:id", cfg.Ingredients.Delete)

	calendar := api.Group("/calendar", caller)
	calendar.Get("/date", cfg.Calendar.ByDate)
	calendar.Get("/expired", cfg.Calendar.Expired)
	calendar.Get("/map", cfg.Calendar.Map)
}
