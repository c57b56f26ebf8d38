// handlers/publication.go
package handlers

import (
	"game-community-platform/middleware"
	"game-community-platform/services"

	"github.com/gofiber/fiber/v2"
)

func SetupPublicationRoutes(app *fiber.App, publicationService *services.PublicationService, secret string) {
	app.Get("/api/publications", publicationService.GetAllPublications)
	app.Get("/api/publications/:id", publicationService.GetPublicationByID)

	auth := middleware.RequireAuth(secret)

	app.Post("/api/publications", auth, publicationService.CreatePublication)
	app.Put("/api/publications/:id", auth, publicationService.UpdatePublication)
	app.Delete("/api/publications/:id", auth, publicationService.DeletePublication)

	// Votes
	app.Get("/api/publications/:id/vote", auth, publicationService.GetUserVote)
	app.Post("/api/publications/:id/vote", auth, publicationService.CastVoteHandler)
	app.Delete("/api/publications/:id/vote", auth, publicationService.RemoveVoteHandler)
}
