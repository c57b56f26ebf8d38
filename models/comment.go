// models/comment.go
package models

import "time"

// CommentType discriminates which entity table a comment's EntityID points
// into. Queries must always filter on (entity_id, type) together: a Game and
// a Publication can share a numeric id.
type CommentType int

const (
	CommentTypePublication CommentType = 0
	CommentTypeGame        CommentType = 1
)

type Comment struct {
	ID       uint        `json:"id" gorm:"primaryKey"`
	EntityID uint        `json:"entity_id" gorm:"not null;index:idx_comment_target"`
	Type     CommentType `json:"type" gorm:"not null;index:idx_comment_target"`
	UserID   uint        `json:"user_id" gorm:"not null;index"`
	Content  string      `json:"content" gorm:"size:1000;not null"`

	// Derived counters, maintained in lockstep with comment_votes.
	Likes    int `json:"likes" gorm:"default:0"`
	Dislikes int `json:"dislikes" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
}

// CommentVote records one like/dislike per (user, comment) pair.
type CommentVote struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	UserID    uint `json:"user_id" gorm:"not null;uniqueIndex:idx_user_comment"`
	CommentID uint `json:"comment_id" gorm:"not null;uniqueIndex:idx_user_comment"`
	Liked     bool `json:"liked" gorm:"not null"`
}
