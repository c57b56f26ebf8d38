package models

import "time"

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:128;not null"` // stored lower-cased
	Name      string    `json:"name" gorm:"size:128;not null"`
	Password  string    `json:"-" gorm:"size:128;not null"` // bcrypt hash
	IsAdmin   bool      `json:"is_admin" gorm:"default:false"`
	IsVisible bool      `json:"is_visible" gorm:"default:true"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
}
