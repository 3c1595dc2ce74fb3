package models

import "time"

// Like represents a user's like on a painting.
// The combination of UserID and PaintingID must be unique, so a painting's
// likes form a set and toggling is an atomic insert or delete.
type Like struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_like_user_painting" json:"user_id"`
	PaintingID uint      `gorm:"not null;uniqueIndex:idx_like_user_painting" json:"painting_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	User     User     `gorm:"foreignKey:UserID" json:"user"`
	Painting Painting `gorm:"foreignKey:PaintingID" json:"painting"`
}
