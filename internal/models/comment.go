// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a painting in the ArtCanvas application.
type Comment struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Text       string         `gorm:"not null" json:"text"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	PaintingID uint           `gorm:"not null;index" json:"painting_id"`
	User       User           `gorm:"foreignKey:UserID" json:"user"`
	Painting   Painting       `gorm:"foreignKey:PaintingID" json:"painting,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
