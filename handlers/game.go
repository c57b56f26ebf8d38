// handlers/game.go
package handlers

import (
	"game-community-platform/middleware"
	"game-community-platform/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGameRoutes(app *fiber.App, gameService *services.GameService, secret string) {
	// Public catalog
	app.Get("/api/games", gameService.GetAllGames)
	app.Get("/api/games/:id", gameService.GetGameByID)

	auth := middleware.RequireAuth(secret)

	// Catalog management (admin gate lives in the service)
	app.Post("/api/games", auth, gameService.CreateGame)
	app.Put("/api/games/:id", auth, gameService.UpdateGame)
	app.Delete("/api/games/:id", auth, gameService.DeleteGame)

	// Ratings
	app.Get("/api/games/:id/rate", auth, gameService.GetUserRating)
	app.Post("/api/games/:id/rate", auth, gameService.SubmitRatingHandler)
	app.Delete("/api/games/:id/rate", auth, gameService.RemoveRatingHandler)
}
