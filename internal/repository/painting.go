// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"artcanvas/internal/cache"
	"artcanvas/internal/models"

	"gorm.io/gorm"
)

// PaintingRepository defines the interface for painting data operations
type PaintingRepository interface {
	Create(ctx context.Context, painting *models.Painting) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Painting, error)
	GetByArtistID(ctx context.Context, artistID uint, currentUserID uint) ([]*models.Painting, error)
	List(ctx context.Context, currentUserID uint) ([]*models.Painting, error)
	Update(ctx context.Context, painting *models.Painting) error
	Delete(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, paintingID uint) (bool, error)
	Like(ctx context.Context, userID, paintingID uint) error
	Unlike(ctx context.Context, userID, paintingID uint) error
}

// paintingRepository implements PaintingRepository
type paintingRepository struct {
	db *gorm.DB
}

// NewPaintingRepository creates a new painting repository
func NewPaintingRepository(db *gorm.DB) PaintingRepository {
	return &paintingRepository{db: db}
}

func (r *paintingRepository) Create(ctx context.Context, painting *models.Painting) error {
	err := r.db.WithContext(ctx).Create(painting).Error
	if err == nil {
		cache.InvalidatePaintingsList(ctx)
	}
	return err
}

func (r *paintingRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Painting, error) {
	var painting models.Painting
	err := r.applyPaintingDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Artist").
		First(&painting, id).Error
	if err != nil {
		return nil, err
	}
	return &painting, nil
}

func (r *paintingRepository) GetByArtistID(ctx context.Context, artistID uint, currentUserID uint) ([]*models.Painting, error) {
	var paintings []*models.Painting
	err := r.applyPaintingDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Artist").
		Where("artist_id = ?", artistID).
		Order("created_at DESC").
		Find(&paintings).Error
	return paintings, err
}

func (r *paintingRepository) List(ctx context.Context, currentUserID uint) ([]*models.Painting, error) {
	var paintings []*models.Painting

	// Anonymous listings carry no per-user flags and can be served cache-aside.
	if currentUserID == 0 {
		err := cache.Aside(ctx, cache.PaintingsListKey, &paintings, cache.PaintingListTTL, func() error {
			return r.applyPaintingDetails(r.db.WithContext(ctx), 0).
				Preload("Artist").
				Order("created_at DESC").
				Find(&paintings).Error
		})
		return paintings, err
	}

	err := r.applyPaintingDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Artist").
		Order("created_at DESC").
		Find(&paintings).Error
	return paintings, err
}

func (r *paintingRepository) Update(ctx context.Context, painting *models.Painting) error {
	err := r.db.WithContext(ctx).Save(painting).Error
	if err == nil {
		cache.InvalidatePainting(ctx, painting.ID)
	}
	return err
}

// Delete removes a painting together with its likes, saves, comments and
// board memberships in a single transaction, so no orphaned references can
// survive a partial failure.
func (r *paintingRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("painting_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("painting_id = ?", id).Delete(&models.SavedPainting{}).Error; err != nil {
			return err
		}
		if err := tx.Where("painting_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("painting_id = ?", id).Delete(&models.BoardPainting{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Painting{}, id).Error
	})
	if err == nil {
		cache.InvalidatePainting(ctx, id)
	}
	return err
}

func (r *paintingRepository) IsLiked(ctx context.Context, userID, paintingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND painting_id = ?", userID, paintingID).
		Count(&count).Error
	return count > 0, err
}

func (r *paintingRepository) Like(ctx context.Context, userID, paintingID uint) error {
	like := models.Like{UserID: userID, PaintingID: paintingID}
	err := r.db.WithContext(ctx).Create(&like).Error
	if err == nil {
		cache.InvalidatePainting(ctx, paintingID)
	}
	return err
}

func (r *paintingRepository) Unlike(ctx context.Context, userID, paintingID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND painting_id = ?", userID, paintingID).
		Delete(&models.Like{}).Error
	if err == nil {
		cache.InvalidatePainting(ctx, paintingID)
	}
	return err
}

// applyPaintingDetails adds subqueries to fetch counts and liked/saved status in a single query.
func (r *paintingRepository) applyPaintingDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "paintings.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.painting_id = paintings.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.painting_id = paintings.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+
			", EXISTS(SELECT 1 FROM likes WHERE likes.painting_id = paintings.id AND likes.user_id = ?) as liked"+
			", EXISTS(SELECT 1 FROM saved_paintings WHERE saved_paintings.painting_id = paintings.id AND saved_paintings.user_id = ?) as saved",
			currentUserID, currentUserID)
	}

	return db.Select(selectQuery + ", false as liked, false as saved")
}
