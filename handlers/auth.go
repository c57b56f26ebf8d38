// handlers/auth.go
package handlers

import (
	"game-community-platform/middleware"
	"game-community-platform/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, authService *services.AuthService) {
	app.Post("/api/register", authService.Register)
	app.Post("/api/login", authService.Login)

	// RequireAuth is attached per route, never as a group middleware on
	// /api: a use-route on the shared prefix would also catch the public
	// reads registered by the other setups.
	auth := middleware.RequireAuth(authService.Secret)
	app.Get("/api/info", auth, authService.Info)
}
