// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Painting represents an uploaded artwork in the ArtCanvas application.
type Painting struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"not null" json:"image_url"`
	Categories  string `gorm:"not null" json:"categories"`
	Tags        string `json:"tags"`
	ArtistID    uint   `gorm:"not null;index" json:"artist_id"`
	Artist      User   `gorm:"foreignKey:ArtistID" json:"artist"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this painting (computed)
	Liked bool `gorm:"->" json:"liked"`
	// Saved indicates whether the current requesting user saved this painting (computed)
	Saved     bool           `gorm:"->" json:"saved"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
