// services/publication_service.go
package services

import (
	"errors"
	"log"
	"time"

	"game-community-platform/middleware"
	"game-community-platform/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type PublicationService struct {
	DB *gorm.DB
}

func NewPublicationService(db *gorm.DB) *PublicationService {
	return &PublicationService{DB: db}
}

// ===== Vote core =====

// CastVote inserts the caller's (user, publication) ledger row and moves the
// matching counter, both inside one transaction. A second vote before a
// removal is rejected outright; changing your mind is remove-then-recast.
func (s *PublicationService) CastVote(publicationID, userID uint, liked bool) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var pub models.Publication
		if err := tx.First(&pub, publicationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTargetNotFound
			}
			return err
		}

		var existing models.PublicationVote
		err := tx.Where("user_id = ? AND publication_id = ?", userID, publicationID).
			First(&existing).Error
		if err == nil {
			return ErrDuplicateVote
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		vote := models.PublicationVote{UserID: userID, PublicationID: publicationID, Liked: liked}
		if err := tx.Create(&vote).Error; err != nil {
			return err
		}
		return adjustCounter(tx, &models.Publication{}, publicationID, liked, 1)
	})
}

// RemoveVote decrements whichever counter the stored vote moved, then
// deletes the ledger row. Absence of a vote is a reported failure.
func (s *PublicationService) RemoveVote(publicationID, userID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var vote models.PublicationVote
		err := tx.Where("user_id = ? AND publication_id = ?", userID, publicationID).
			First(&vote).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVoteNotFound
			}
			return err
		}
		if err := adjustCounter(tx, &models.Publication{}, publicationID, vote.Liked, -1); err != nil {
			return err
		}
		return tx.Delete(&vote).Error
	})
}

// UserVote returns the caller's stored choice, or nil if they have not voted.
func (s *PublicationService) UserVote(publicationID, userID uint) (*bool, error) {
	var vote models.PublicationVote
	err := s.DB.Where("user_id = ? AND publication_id = ?", userID, publicationID).
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vote.Liked, nil
}

// ===== Vote handlers =====

func (s *PublicationService) CastVoteHandler(c *fiber.Ctx) error {
	var input struct {
		Liked bool `json:"liked"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	return writeVoteResult(c, s.CastVote(paramID(c, "id"), middleware.UserID(c), input.Liked),
		"Vote recorded successfully", "publication")
}

func (s *PublicationService) RemoveVoteHandler(c *fiber.Ctx) error {
	return writeVoteResult(c, s.RemoveVote(paramID(c, "id"), middleware.UserID(c)),
		"Vote removed successfully", "publication")
}

func (s *PublicationService) GetUserVote(c *fiber.Ctx) error {
	liked, err := s.UserVote(paramID(c, "id"), middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch vote"})
	}
	return c.JSON(fiber.Map{"liked": liked})
}

// writeVoteResult maps a vote core error onto the response, shared by the
// publication and comment vote handlers.
func writeVoteResult(c *fiber.Ctx, err error, okMessage, targetName string) error {
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"message": okMessage})
	case errors.Is(err, ErrDuplicateVote), errors.Is(err, ErrVoteNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrTargetNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": targetName + " not found"})
	default:
		log.Printf("[Vote] %s vote failed: %v", targetName, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process vote"})
	}
}

// ===== Publication CRUD =====

// publicationResponse joins the author's display name onto the row, the
// shape the blog pages render.
type publicationResponse struct {
	ID         uint       `json:"id"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Abstract   string     `json:"abstract"`
	Content    string     `json:"content"`
	Likes      int        `json:"likes"`
	Dislikes   int        `json:"dislikes"`
	ImageURL   string     `json:"image_url"`
	Status     string     `json:"status"`
	PublishAt  *time.Time `json:"publish_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	AuthorName string     `json:"author_name"`
}

func (s *PublicationService) publicationQuery() *gorm.DB {
	return s.DB.Table("publications").
		Select("publications.*, users.name AS author_name").
		Joins("LEFT JOIN users ON users.id = publications.author_id")
}

func (s *PublicationService) GetAllPublications(c *fiber.Ctx) error {
	var out []publicationResponse
	err := s.publicationQuery().
		Where("publications.status = ?", models.PublicationStatusPublished).
		Order("publications.created_at DESC").
		Scan(&out).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch publications"})
	}
	return c.JSON(out)
}

func (s *PublicationService) GetPublicationByID(c *fiber.Ctx) error {
	var out publicationResponse
	res := s.publicationQuery().Where("publications.id = ?", paramID(c, "id")).Scan(&out)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Publication not found"})
	}
	return c.JSON(out)
}

// CreatePublication accepts a multipart form; an optional future publish_at
// (RFC 3339) schedules the post instead of publishing it immediately.
func (s *PublicationService) CreatePublication(c *fiber.Ctx) error {
	title := c.FormValue("title")
	abstract := c.FormValue("abstract")
	content := c.FormValue("content")
	if title == "" || abstract == "" || content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title, abstract and content are required"})
	}

	pub := models.Publication{
		Title:    title,
		Slug:     slug.Make(title),
		Abstract: abstract,
		Content:  content,
		AuthorID: middleware.UserID(c),
		Status:   models.PublicationStatusPublished,
	}

	if v := c.FormValue("publish_at"); v != "" {
		at, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "publish_at must be RFC 3339"})
		}
		if at.After(time.Now()) {
			pub.Status = models.PublicationStatusScheduled
			pub.PublishAt = &at
		}
	}

	if fh, err := c.FormFile("image"); err == nil {
		url, err := saveImage(fh, "publications")
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save image"})
		}
		pub.ImageURL = url
	}

	if err := s.DB.Create(&pub).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create publication"})
	}
	return c.Status(fiber.StatusCreated).JSON(pub)
}

// UpdatePublication patches the provided fields. Author or admin only.
func (s *PublicationService) UpdatePublication(c *fiber.Ctx) error {
	pub, ok := s.loadOwned(c)
	if !ok {
		return nil
	}

	if v := c.FormValue("title"); v != "" {
		pub.Title = v
		pub.Slug = slug.Make(v)
	}
	if v := c.FormValue("abstract"); v != "" {
		pub.Abstract = v
	}
	if v := c.FormValue("content"); v != "" {
		pub.Content = v
	}
	if fh, err := c.FormFile("image"); err == nil {
		url, err := saveImage(fh, "publications")
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save image"})
		}
		pub.ImageURL = url
	}

	if err := s.DB.Save(pub).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update publication"})
	}
	return c.JSON(pub)
}

// DeletePublication removes the publication with its votes and its comments
// (and their votes) in one transaction. Author or admin only.
func (s *PublicationService) DeletePublication(c *fiber.Ctx) error {
	pub, ok := s.loadOwned(c)
	if !ok {
		return nil
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("publication_id = ?", pub.ID).
			Delete(&models.PublicationVote{}).Error; err != nil {
			return err
		}
		if err := deleteCommentsForTarget(tx, pub.ID, models.CommentTypePublication); err != nil {
			return err
		}
		return tx.Delete(pub).Error
	})
	if err != nil {
		log.Printf("[Publication] delete failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete publication"})
	}
	return c.JSON(fiber.Map{"message": "Publication deleted successfully"})
}

// loadOwned fetches the publication and enforces author-or-admin access.
// On failure the response has already been written.
func (s *PublicationService) loadOwned(c *fiber.Ctx) (*models.Publication, bool) {
	var pub models.Publication
	if err := s.DB.First(&pub, paramID(c, "id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Publication not found"})
		} else {
			_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
		}
		return nil, false
	}

	userID := middleware.UserID(c)
	if pub.AuthorID != userID {
		var user models.User
		if err := s.DB.First(&user, userID).Error; err != nil || !user.IsAdmin {
			_ = c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
			return nil, false
		}
	}
	return &pub, true
}
