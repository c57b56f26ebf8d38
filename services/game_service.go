// services/game_service.go
package services

import (
	"errors"
	"log"
	"math"
	"mime/multipart"
	"path/filepath"
	"strconv"

	"game-community-platform/middleware"
	"game-community-platform/models"
	"game-community-platform/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type GameService struct {
	DB *gorm.DB
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{DB: db}
}

// ===== Rating core =====

// SubmitRating upserts the caller's (user, game) ledger row and recomputes
// the game's average inside one transaction. Returns the new average and
// whether this was the user's first rating for the game.
func (s *GameService) SubmitRating(gameID, userID uint, value float64) (float64, bool, error) {
	// NaN fails neither bound check, so it needs its own rejection.
	if math.IsNaN(value) || value < 1 || value > 5 {
		return 0, false, ErrInvalidRating
	}

	var avg float64
	var created bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var game models.Game
		if err := tx.First(&game, gameID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTargetNotFound
			}
			return err
		}

		var rating models.Rating
		err := tx.Where("user_id = ? AND game_id = ?", userID, gameID).First(&rating).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
			rating = models.Rating{UserID: userID, GameID: gameID, Rating: value}
			if err := tx.Create(&rating).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Model(&rating).Update("rating", value).Error; err != nil {
				return err
			}
		}

		avg, err = averageRating(tx, gameID)
		if err != nil {
			return err
		}
		return tx.Model(&models.Game{}).Where("id = ?", gameID).
			Update("average_user_rate", avg).Error
	})
	return avg, created, err
}

// RemoveRating deletes the caller's ledger row and recomputes the average
// over the remaining rows (mean of the empty set is 0).
func (s *GameService) RemoveRating(gameID, userID uint) (float64, error) {
	var avg float64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var rating models.Rating
		err := tx.Where("user_id = ? AND game_id = ?", userID, gameID).First(&rating).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRatingNotFound
			}
			return err
		}
		if err := tx.Delete(&rating).Error; err != nil {
			return err
		}
		avg, err = averageRating(tx, gameID)
		if err != nil {
			return err
		}
		return tx.Model(&models.Game{}).Where("id = ?", gameID).
			Update("average_user_rate", avg).Error
	})
	return avg, err
}

// UserRating returns the caller's own stored rating, or nil if they have
// not voted. Other users' individual ratings are never exposed.
func (s *GameService) UserRating(gameID, userID uint) (*float64, error) {
	var rating models.Rating
	err := s.DB.Where("user_id = ? AND game_id = ?", userID, gameID).First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rating.Rating, nil
}

// ===== Rating handlers =====

func (s *GameService) SubmitRatingHandler(c *fiber.Ctx) error {
	gameID := paramID(c, "id")

	var input struct {
		Rating float64 `json:"rating"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	avg, createdNew, err := s.SubmitRating(gameID, middleware.UserID(c), input.Rating)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRating):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ErrTargetNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "game not found"})
		}
		log.Printf("[Rating] submit failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit rating"})
	}

	status := fiber.StatusOK
	if createdNew {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"message":           "Rating submitted successfully",
		"average_user_rate": avg,
	})
}

func (s *GameService) RemoveRatingHandler(c *fiber.Ctx) error {
	avg, err := s.RemoveRating(paramID(c, "id"), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, ErrRatingNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		log.Printf("[Rating] remove failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to remove rating"})
	}
	return c.JSON(fiber.Map{
		"message":           "Rating removed successfully",
		"average_user_rate": avg,
	})
}

func (s *GameService) GetUserRating(c *fiber.Ctx) error {
	rating, err := s.UserRating(paramID(c, "id"), middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch rating"})
	}
	return c.JSON(fiber.Map{"rating": rating})
}

// ===== Game CRUD =====

func (s *GameService) GetAllGames(c *fiber.Ctx) error {
	var games []models.Game
	if err := s.DB.Order("critics_rate DESC").Find(&games).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch games"})
	}
	return c.JSON(games)
}

func (s *GameService) GetGameByID(c *fiber.Ctx) error {
	var game models.Game
	if err := s.DB.First(&game, paramID(c, "id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Game not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(game)
}

// CreateGame creates a catalog entry from a multipart form. Admin only.
func (s *GameService) CreateGame(c *fiber.Ctx) error {
	if _, ok := requireAdmin(s.DB, c); !ok {
		return nil
	}

	title := c.FormValue("title")
	description := c.FormValue("description")
	producer := c.FormValue("producer")
	if title == "" || description == "" || producer == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title, description and producer are required"})
	}

	game := models.Game{
		Title:       title,
		Slug:        slug.Make(title),
		Description: description,
		Producer:    producer,
	}
	if v := c.FormValue("critics_rate"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "critics_rate must be a number"})
		}
		game.CriticsRate = &rate
	}

	if fh, err := c.FormFile("image"); err == nil {
		url, err := saveImage(fh, "games")
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save image"})
		}
		game.ImageURL = url
	}

	if err := s.DB.Create(&game).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create game"})
	}
	return c.Status(fiber.StatusCreated).JSON(game)
}

// UpdateGame patches the provided form fields. Admin only.
func (s *GameService) UpdateGame(c *fiber.Ctx) error {
	if _, ok := requireAdmin(s.DB, c); !ok {
		return nil
	}

	var game models.Game
	if err := s.DB.First(&game, paramID(c, "id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Game not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	if v := c.FormValue("title"); v != "" {
		game.Title = v
		game.Slug = slug.Make(v)
	}
	if v := c.FormValue("description"); v != "" {
		game.Description = v
	}
	if v := c.FormValue("producer"); v != "" {
		game.Producer = v
	}
	if v := c.FormValue("critics_rate"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "critics_rate must be a number"})
		}
		game.CriticsRate = &rate
	}
	if fh, err := c.FormFile("image"); err == nil {
		url, err := saveImage(fh, "games")
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save image"})
		}
		game.ImageURL = url
	}

	if err := s.DB.Save(&game).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update game"})
	}
	return c.JSON(game)
}

// DeleteGame removes the game together with its ratings, favourites and
// game-typed comments (and their votes) in one transaction. Admin only.
func (s *GameService) DeleteGame(c *fiber.Ctx) error {
	if _, ok := requireAdmin(s.DB, c); !ok {
		return nil
	}
	id := paramID(c, "id")

	var game models.Game
	if err := s.DB.First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Game not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", id).Delete(&models.Favourite{}).Error; err != nil {
			return err
		}
		if err := deleteCommentsForTarget(tx, id, models.CommentTypeGame); err != nil {
			return err
		}
		return tx.Delete(&game).Error
	})
	if err != nil {
		log.Printf("[Game] delete failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete game"})
	}
	return c.JSON(fiber.Map{"message": "Game deleted successfully"})
}

// ===== shared helpers =====

// paramID parses a numeric path parameter; 0 never matches a row.
func paramID(c *fiber.Ctx, name string) uint {
	id, _ := strconv.Atoi(c.Params(name))
	if id < 0 {
		return 0
	}
	return uint(id)
}

// saveImage stores an uploaded image under uploads/<folder>/ with a UUID
// filename, mirrors it to R2 when configured, and returns the public URL.
func saveImage(fh *multipart.FileHeader, folder string) (string, error) {
	ext := filepath.Ext(fh.Filename)
	if ext == "" {
		ext = ".png"
	}
	key := folder + "/" + uuid.New().String() + ext

	localPath := utils.GetUploadPath(key)
	if err := utils.SaveFile(fh, localPath); err != nil {
		return "", err
	}

	if utils.R2Enabled() {
		url, err := utils.UploadFileToR2(fh, key)
		if err == nil {
			return url, nil
		}
		log.Printf("[Upload] R2 upload failed, serving local copy: %v", err)
	}
	return "/" + filepath.ToSlash(localPath), nil
}
