// models/publication.go
package models

import "time"

const (
	PublicationStatusDraft     = "draft"
	PublicationStatusScheduled = "scheduled"
	PublicationStatusPublished = "published"
)

type Publication struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Title    string `json:"title" gorm:"size:128;not null"`
	Slug     string `json:"slug" gorm:"index"`
	Abstract string `json:"abstract" gorm:"size:250;not null"`
	Content  string `json:"content" gorm:"size:5000;not null"`
	AuthorID uint   `json:"author_id" gorm:"not null;index"`

	// Derived counters. Source of truth is the publication_votes ledger;
	// every ledger write moves exactly one of these in the same transaction.
	Likes    int `json:"likes" gorm:"default:0"`
	Dislikes int `json:"dislikes" gorm:"default:0"`

	ImageURL string `json:"image_url"`

	// Publishing state: draft | scheduled | published
	Status    string     `json:"status" gorm:"default:'published'"`
	PublishAt *time.Time `json:"publish_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicationVote records one like/dislike per (user, publication) pair.
// Insert/delete only: flipping a vote requires remove-then-recast.
type PublicationVote struct {
	ID            uint `json:"id" gorm:"primaryKey"`
	UserID        uint `json:"user_id" gorm:"not null;uniqueIndex:idx_user_publication"`
	PublicationID uint `json:"publication_id" gorm:"not null;uniqueIndex:idx_user_publication"`
	Liked         bool `json:"liked" gorm:"not null"`
}
