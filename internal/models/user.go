// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultAvatarURL is assigned to accounts registered without an avatar upload.
const DefaultAvatarURL = "https://img.artcanvas.dev/static/avatar-default.png"

// User represents an account in the ArtCanvas application.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Avatar    string         `json:"avatar"`
	Bio       string         `json:"bio"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Paintings      []Painting `gorm:"foreignKey:ArtistID" json:"paintings,omitempty"`
	Boards         []Board    `gorm:"foreignKey:UserID" json:"boards,omitempty"`
	SavedPaintings []Painting `gorm:"many2many:saved_paintings;joinForeignKey:UserID;joinReferences:PaintingID" json:"saved_paintings,omitempty"`
}
