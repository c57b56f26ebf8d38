// services/admin_service.go
package services

import (
	"errors"

	"game-community-platform/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AdminService struct {
	DB *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{DB: db}
}

type userSummary struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	IsAdmin   bool   `json:"is_admin"`
	IsVisible bool   `json:"is_visible"`
}

// ListUsers returns every account. Admin only.
func (s *AdminService) ListUsers(c *fiber.Ctx) error {
	if _, ok := requireAdmin(s.DB, c); !ok {
		return nil
	}

	var users []userSummary
	if err := s.DB.Model(&models.User{}).Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch users"})
	}
	return c.JSON(users)
}

// UpdateUser patches the admin/visibility flags of another account.
// Absent fields are left untouched. Admin only.
func (s *AdminService) UpdateUser(c *fiber.Ctx) error {
	if _, ok := requireAdmin(s.DB, c); !ok {
		return nil
	}

	var input struct {
		IsAdmin   *bool `json:"is_admin"`
		IsVisible *bool `json:"is_visible"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	var user models.User
	if err := s.DB.First(&user, paramID(c, "id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	if input.IsAdmin != nil {
		user.IsAdmin = *input.IsAdmin
	}
	if input.IsVisible != nil {
		user.IsVisible = *input.IsVisible
	}
	if err := s.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user"})
	}
	return c.JSON(fiber.Map{"message": "User permissions updated successfully"})
}

// GetUser returns a public user profile.
func (s *AdminService) GetUser(c *fiber.Ctx) error {
	var user userSummary
	res := s.DB.Model(&models.User{}).Where("id = ?", paramID(c, "id")).Find(&user)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(user)
}
