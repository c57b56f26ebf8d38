// handlers/admin.go
package handlers

import (
	"game-community-platform/middleware"
	"game-community-platform/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App, adminService *services.AdminService, secret string) {
	app.Get("/api/user/:id", adminService.GetUser)

	auth := middleware.RequireAuth(secret)
	app.Get("/api/admin/users", auth, adminService.ListUsers)
	app.Put("/api/admin/users/:id", auth, adminService.UpdateUser)
}
