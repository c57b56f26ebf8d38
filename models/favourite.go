package models

import "time"

// Favourite marks a game as a favourite of a user. One row per pair.
type Favourite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_favourite"`
	GameID    uint      `json:"game_id" gorm:"not null;uniqueIndex:idx_user_favourite"`
	CreatedAt time.Time `json:"created_at"`

	Game Game `json:"game" gorm:"foreignKey:GameID"`
}
