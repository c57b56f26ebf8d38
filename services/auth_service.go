// services/auth_service.go
package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"game-community-platform/middleware"
	"game-community-platform/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

var validate = validator.New()

type AuthService struct {
	DB       *gorm.DB
	Secret   string
	TokenTTL time.Duration
}

func NewAuthService(db *gorm.DB, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{DB: db, Secret: secret, TokenTTL: tokenTTL}
}

// RegisterUser creates a user with a bcrypt-hashed password. Emails are
// case-folded before the uniqueness check so A@x.com and a@x.com collide.
func (s *AuthService) RegisterUser(email, name, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.User
	err := s.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     email,
		Name:      name,
		Password:  string(hash),
		IsAdmin:   false,
		IsVisible: true,
		LastLogin: time.Now(),
	}
	if err := s.DB.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// LoginUser verifies the password, bumps LastLogin and issues a signed JWT.
func (s *AuthService) LoginUser(email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := s.DB.Model(&user).Update("last_login", time.Now()).Error; err != nil {
		return "", nil, err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.TokenTTL).Unix(),
		"iat":     time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(s.Secret))
	if err != nil {
		return "", nil, err
	}
	return signed, &user, nil
}

// ===== HTTP handlers =====

func (s *AuthService) Register(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email" validate:"required,email"`
		Name     string `json:"name" validate:"required"`
		Password string `json:"password" validate:"required,min=6"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No email or password"})
	}

	user, err := s.RegisterUser(input.Email, input.Name, input.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		log.Printf("[Auth] register failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to register"})
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (s *AuthService) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No email or password"})
	}

	token, _, err := s.LoginUser(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		log.Printf("[Auth] login failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to login"})
	}
	return c.JSON(fiber.Map{"token": token})
}

// Info returns the authenticated caller's own profile.
func (s *AuthService) Info(c *fiber.Ctx) error {
	var user models.User
	if err := s.DB.First(&user, middleware.UserID(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(fiber.Map{
		"id":       user.ID,
		"email":    user.Email,
		"name":     user.Name,
		"is_admin": user.IsAdmin,
	})
}

// requireAdmin loads the caller and rejects non-admins. On failure the
// response has already been written; the handler should just return nil.
func requireAdmin(db *gorm.DB, c *fiber.Ctx) (*models.User, bool) {
	var user models.User
	if err := db.First(&user, middleware.UserID(c)).Error; err != nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unknown user"})
		return nil, false
	}
	if !user.IsAdmin {
		_ = c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
		return nil, false
	}
	return &user, true
}
