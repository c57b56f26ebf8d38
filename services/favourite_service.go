// services/favourite_service.go
package services

import (
	"errors"

	"game-community-platform/middleware"
	"game-community-platform/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type FavouriteService struct {
	DB *gorm.DB
}

func NewFavouriteService(db *gorm.DB) *FavouriteService {
	return &FavouriteService{DB: db}
}

// ListForUser returns a user's favourites with the games preloaded.
func (s *FavouriteService) ListForUser(c *fiber.Ctx) error {
	favourites := []models.Favourite{}
	err := s.DB.Preload("Game").
		Where("user_id = ?", paramID(c, "id")).
		Find(&favourites).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch favourites"})
	}
	return c.JSON(favourites)
}

// CheckFavourite reports whether the game is in the caller's favourites.
func (s *FavouriteService) CheckFavourite(c *fiber.Ctx) error {
	var favourite models.Favourite
	err := s.DB.Where("user_id = ? AND game_id = ?", middleware.UserID(c), paramID(c, "id")).
		First(&favourite).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(fiber.Map{"is_favourite": err == nil})
}

func (s *FavouriteService) AddFavourite(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	gameID := paramID(c, "id")

	if err := s.DB.First(&models.Game{}, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Game not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var existing models.Favourite
	err := s.DB.Where("user_id = ? AND game_id = ?", userID, gameID).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Game is already in favourites"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	favourite := models.Favourite{UserID: userID, GameID: gameID}
	if err := s.DB.Create(&favourite).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add favourite"})
	}
	return c.Status(fiber.StatusCreated).JSON(favourite)
}

func (s *FavouriteService) RemoveFavourite(c *fiber.Ctx) error {
	var favourite models.Favourite
	err := s.DB.Where("user_id = ? AND game_id = ?", middleware.UserID(c), paramID(c, "id")).
		First(&favourite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Favourite not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	if err := s.DB.Delete(&favourite).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to remove favourite"})
	}
	return c.JSON(fiber.Map{"message": "Favourite removed successfully"})
}
