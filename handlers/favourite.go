// handlers/favourite.go
package handlers

import (
	"game-community-platform/middleware"
	"game-community-platform/services"

	"github.com/gofiber/fiber/v2"
)

func SetupFavouriteRoutes(app *fiber.App, favouriteService *services.FavouriteService, secret string) {
	auth := middleware.RequireAuth(secret)

	app.Get("/api/users/:id/favourites", auth, favouriteService.ListForUser)
	app.Get("/api/games/:id/favourite", auth, favouriteService.CheckFavourite)
	app.Post("/api/games/:id/favourite", auth, favouriteService.AddFavourite)
	app.Delete("/api/games/:id/favourite", auth, favouriteService.RemoveFavourite)
}
