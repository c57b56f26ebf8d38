// services/comment_service.go
package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"game-community-platform/middleware"
	"game-community-platform/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ErrEmptyContent rejects comments that are empty after trimming.
var ErrEmptyContent = errors.New("content cannot be empty")

type CommentService struct {
	DB *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{DB: db}
}

// commentResponse joins the author's display name onto the row.
type commentResponse struct {
	ID         uint      `json:"id"`
	Content    string    `json:"content"`
	Likes      int       `json:"likes"`
	Dislikes   int       `json:"dislikes"`
	CreatedAt  time.Time `json:"created_at"`
	AuthorName string    `json:"author_name"`
}

// ListComments returns the comments attached to one target, newest first.
// entity_id and type are always filtered together (a Game and a Publication
// can share a numeric id).
func (s *CommentService) ListComments(entityID uint, entityType models.CommentType) ([]commentResponse, error) {
	out := []commentResponse{}
	err := s.DB.Table("comments").
		Select("comments.id, comments.content, comments.likes, comments.dislikes, comments.created_at, users.name AS author_name").
		Joins("LEFT JOIN users ON users.id = comments.user_id").
		Where("comments.entity_id = ? AND comments.type = ?", entityID, entityType).
		Order("comments.created_at DESC").
		Scan(&out).Error
	return out, err
}

// CreateComment attaches a comment to an existing target; a dangling
// (entity_id, type) pair is rejected before anything is written.
func (s *CommentService) CreateComment(entityID uint, entityType models.CommentType, userID uint, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if err := s.targetExists(entityID, entityType); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		EntityID: entityID,
		Type:     entityType,
		UserID:   userID,
		Content:  content,
	}
	if err := s.DB.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) targetExists(entityID uint, entityType models.CommentType) error {
	var err error
	switch entityType {
	case models.CommentTypeGame:
		err = s.DB.First(&models.Game{}, entityID).Error
	case models.CommentTypePublication:
		err = s.DB.First(&models.Publication{}, entityID).Error
	default:
		return ErrTargetNotFound
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTargetNotFound
	}
	return err
}

// ===== Comment vote core =====

func (s *CommentService) CastVote(commentID, userID uint, liked bool) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTargetNotFound
			}
			return err
		}

		var existing models.CommentVote
		err := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).First(&existing).Error
		if err == nil {
			return ErrDuplicateVote
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		vote := models.CommentVote{UserID: userID, CommentID: commentID, Liked: liked}
		if err := tx.Create(&vote).Error; err != nil {
			return err
		}
		return adjustCounter(tx, &models.Comment{}, commentID, liked, 1)
	})
}

func (s *CommentService) RemoveVote(commentID, userID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var vote models.CommentVote
		err := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).First(&vote).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVoteNotFound
			}
			return err
		}
		if err := adjustCounter(tx, &models.Comment{}, commentID, vote.Liked, -1); err != nil {
			return err
		}
		return tx.Delete(&vote).Error
	})
}

func (s *CommentService) UserVote(commentID, userID uint) (*bool, error) {
	var vote models.CommentVote
	err := s.DB.Where("user_id = ? AND comment_id = ?", userID, commentID).First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vote.Liked, nil
}

// ===== HTTP handlers =====

// listHandler / createHandler / deleteHandler are shared by the game and
// publication comment routes; the route setup fixes the discriminator.

func (s *CommentService) ListHandler(entityType models.CommentType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		comments, err := s.ListComments(paramID(c, "id"), entityType)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch comments"})
		}
		return c.JSON(comments)
	}
}

func (s *CommentService) CreateHandler(entityType models.CommentType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input struct {
			Content string `json:"content"`
		}
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		comment, err := s.CreateComment(paramID(c, "id"), entityType, middleware.UserID(c), input.Content)
		if err != nil {
			switch {
			case errors.Is(err, ErrTargetNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "target not found"})
			case errors.Is(err, ErrEmptyContent):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			log.Printf("[Comment] create failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create comment"})
		}

		var user models.User
		authorName := ""
		if err := s.DB.First(&user, comment.UserID).Error; err == nil {
			authorName = user.Name
		}
		return c.Status(fiber.StatusCreated).JSON(commentResponse{
			ID:         comment.ID,
			Content:    comment.Content,
			Likes:      comment.Likes,
			Dislikes:   comment.Dislikes,
			CreatedAt:  comment.CreatedAt,
			AuthorName: authorName,
		})
	}
}

// DeleteHandler removes one comment of the given target. Admin only.
func (s *CommentService) DeleteHandler(entityType models.CommentType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := requireAdmin(s.DB, c); !ok {
			return nil
		}

		var comment models.Comment
		err := s.DB.Where("id = ? AND entity_id = ? AND type = ?",
			paramID(c, "commentId"), paramID(c, "id"), entityType).First(&comment).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Comment not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
		}

		err = s.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("comment_id = ?", comment.ID).Delete(&models.CommentVote{}).Error; err != nil {
				return err
			}
			return tx.Delete(&comment).Error
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete comment"})
		}
		return c.JSON(fiber.Map{"message": "Comment deleted successfully"})
	}
}

func (s *CommentService) CastVoteHandler(c *fiber.Ctx) error {
	var input struct {
		Liked bool `json:"liked"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	return writeVoteResult(c, s.CastVote(paramID(c, "id"), middleware.UserID(c), input.Liked),
		"Vote recorded successfully", "comment")
}

func (s *CommentService) RemoveVoteHandler(c *fiber.Ctx) error {
	return writeVoteResult(c, s.RemoveVote(paramID(c, "id"), middleware.UserID(c)),
		"Vote removed successfully", "comment")
}

func (s *CommentService) GetUserVote(c *fiber.Ctx) error {
	liked, err := s.UserVote(paramID(c, "id"), middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch vote"})
	}
	return c.JSON(fiber.Map{"liked": liked})
}

// deleteCommentsForTarget removes a target's comments and their votes; used
// when a game or publication is deleted.
func deleteCommentsForTarget(tx *gorm.DB, entityID uint, entityType models.CommentType) error {
	var ids []uint
	if err := tx.Model(&models.Comment{}).
		Where("entity_id = ? AND type = ?", entityID, entityType).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("comment_id IN ?", ids).Delete(&models.CommentVote{}).Error; err != nil {
		return err
	}
	return tx.Where("entity_id = ? AND type = ?", entityID, entityType).
		Delete(&models.Comment{}).Error
}
