// handlers/event.go
package handlers

import (
	"game-community-platform/middleware"
	"game-community-platform/services"

	"github.com/gofiber/fiber/v2"
)

func SetupEventRoutes(app *fiber.App, eventService *services.EventService, secret string) {
	app.Get("/api/events", eventService.GetAllEvents)

	auth := middleware.RequireAuth(secret)
	app.Post("/api/events", auth, eventService.CreateEvent)
	app.Delete("/api/events/:id", auth, eventService.DeleteEvent)
}
