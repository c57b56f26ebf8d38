// models/game.go
package models

import "time"

type Game struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	Title       string   `json:"title" gorm:"size:128;not null"`
	Slug        string   `json:"slug" gorm:"index"`
	Description string   `json:"description" gorm:"size:5000;not null"`
	Producer    string   `json:"producer" gorm:"size:128;not null"`
	CriticsRate *float64 `json:"critics_rate"`

	// Derived: arithmetic mean of all Rating rows for this game, 0 if none.
	// Recomputed inside the same transaction as every rating mutation.
	AverageUserRate float64 `json:"average_user_rate" gorm:"default:0"`

	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Rating is the vote ledger behind Game.AverageUserRate.
// The unique pair index makes a second submit from the same user an
// overwrite of the existing row, never a second row.
type Rating struct {
	ID     uint    `json:"id" gorm:"primaryKey"`
	UserID uint    `json:"user_id" gorm:"not null;uniqueIndex:idx_user_game"`
	GameID uint    `json:"game_id" gorm:"not null;uniqueIndex:idx_user_game"`
	Rating float64 `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
}
