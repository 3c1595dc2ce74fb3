// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"artcanvas/internal/cache"
	"artcanvas/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPainting(ctx context.Context, paintingID uint) ([]*models.Comment, error)
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return err
	}
	// The cached listing bakes in comments_count
	cache.InvalidatePainting(ctx, comment.PaintingID)
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByPainting(ctx context.Context, paintingID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("painting_id = ?", paintingID).
		Order("created_at desc").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Select("id", "painting_id").First(&comment, id).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&comment).Error; err != nil {
		return err
	}
	cache.InvalidatePainting(ctx, comment.PaintingID)
	return nil
}
