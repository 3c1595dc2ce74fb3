package models

import (
	"time"

	"gorm.io/gorm"
)

// Board represents a user-curated collection of paintings.
type Board struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Paintings is not a direct association; the repository fills it from
	// board_paintings rows in position order.
	Paintings []Painting `gorm:"-" json:"paintings"`
}

// BoardPainting pins a painting onto a board. A painting appears on a board
// at most once; Position preserves the order paintings were added in.
type BoardPainting struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BoardID    uint      `gorm:"not null;uniqueIndex:idx_board_painting" json:"board_id"`
	PaintingID uint      `gorm:"not null;uniqueIndex:idx_board_painting" json:"painting_id"`
	Position   int       `gorm:"not null" json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}
