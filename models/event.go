package models

import "time"

type Event struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:128;not null"`
	Description string    `json:"description" gorm:"size:5000;not null"`
	Date        time.Time `json:"date" gorm:"not null;index"`
}
