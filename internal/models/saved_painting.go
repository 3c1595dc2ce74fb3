package models

import "time"

// SavedPainting pins a painting into a user's saved collection.
// The combination of UserID and PaintingID must be unique.
type SavedPainting struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_saved_user_painting" json:"user_id"`
	PaintingID uint      `gorm:"not null;uniqueIndex:idx_saved_user_painting" json:"painting_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	User     User     `gorm:"foreignKey:UserID" json:"user"`
	Painting Painting `gorm:"foreignKey:PaintingID" json:"painting"`
}
