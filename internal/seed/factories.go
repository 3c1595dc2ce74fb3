// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"artcanvas/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var paintingCategories = []string{
	"abstract", "landscape", "portrait", "still-life", "surrealism",
	"impressionism", "digital", "watercolor", "oil", "street-art",
	"minimalism", "pop-art", "photography", "illustration",
}

var boardNames = []string{
	"Inspiration", "Favorites", "Color Studies", "To Recreate", "Moodboard",
	"Gallery Wall", "Sketchbook Ideas", "Dream Studio", "Portfolio Picks",
}

// CreateUser constructs and persists a sample user. All seeded users share
// the password "password123". Optional override functions may modify the
// generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: string(hashed),
		Bio:      gofakeit.Sentence(10),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// CreatePainting constructs and persists a painting for the given artist
// with a realistic created_at spread over the last 90 days.
func (f *Factory) CreatePainting(artist *models.User, overrides ...func(*models.Painting)) (*models.Painting, error) {
	category := paintingCategories[f.r.Intn(len(paintingCategories))]
	painting := &models.Painting{
		Title:       gofakeit.Sentence(4),
		Description: gofakeit.Paragraph(1, 2, 8, "\n"),
		Categories:  category,
		Tags:        fmt.Sprintf("%s,%s", gofakeit.HipsterWord(), gofakeit.HipsterWord()),
		ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
		ArtistID:    artist.ID,
	}

	daysBack := f.r.Intn(90)
	hoursBack := f.r.Intn(24)
	painting.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(painting)
	}

	if err := f.db.Create(painting).Error; err != nil {
		return nil, fmt.Errorf("create painting: %w", err)
	}
	return painting, nil
}

// CreateComment persists a short generated comment from user on painting.
func (f *Factory) CreateComment(user *models.User, painting *models.Painting) (*models.Comment, error) {
	comment := &models.Comment{
		Text:       gofakeit.Sentence(gofakeit.Number(3, 12)),
		UserID:     user.ID,
		PaintingID: painting.ID,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// CreateBoard persists a board with a name drawn from a curated list.
func (f *Factory) CreateBoard(user *models.User) (*models.Board, error) {
	board := &models.Board{
		Name:   boardNames[f.r.Intn(len(boardNames))],
		UserID: user.ID,
	}
	if err := f.db.Create(board).Error; err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}
	return board, nil
}
