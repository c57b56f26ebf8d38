// handlers/comment.go
package handlers

import (
	"game-community-platform/middleware"
	"game-community-platform/models"
	"game-community-platform/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCommentRoutes(app *fiber.App, commentService *services.CommentService, secret string) {
	// Listing is public; the discriminator is fixed per route so a game and
	// a publication sharing an id can never leak each other's threads.
	app.Get("/api/publications/:id/comments", commentService.ListHandler(models.CommentTypePublication))
	app.Get("/api/games/:id/comments", commentService.ListHandler(models.CommentTypeGame))

	auth := middleware.RequireAuth(secret)

	app.Post("/api/publications/:id/comments", auth, commentService.CreateHandler(models.CommentTypePublication))
	app.Delete("/api/publications/:id/comments/:commentId", auth, commentService.DeleteHandler(models.CommentTypePublication))
	app.Post("/api/games/:id/comments", auth, commentService.CreateHandler(models.CommentTypeGame))
	app.Delete("/api/games/:id/comments/:commentId", auth, commentService.DeleteHandler(models.CommentTypeGame))

	// Votes
	app.Get("/api/comments/:id/vote", auth, commentService.GetUserVote)
	app.Post("/api/comments/:id/vote", auth, commentService.CastVoteHandler)
	app.Delete("/api/comments/:id/vote", auth, commentService.RemoveVoteHandler)
}
