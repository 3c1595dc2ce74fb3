// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"artcanvas/internal/cache"
	"artcanvas/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetProfile(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	IsSaved(ctx context.Context, userID, paintingID uint) (bool, error)
	SavePainting(ctx context.Context, userID, paintingID uint) error
	UnsavePainting(ctx context.Context, userID, paintingID uint) error
}

// userRepository implements UserRepository
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.NewNotFoundError("User")
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetProfile loads a user together with their boards and saved paintings.
func (r *userRepository) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Boards").
		Preload("SavedPaintings").
		First(&user, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.NewNotFoundError("User")
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // Return nil for not found, not an error
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

func (r *userRepository) IsSaved(ctx context.Context, userID, paintingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SavedPainting{}).
		Where("user_id = ? AND painting_id = ?", userID, paintingID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) SavePainting(ctx context.Context, userID, paintingID uint) error {
	save := models.SavedPainting{UserID: userID, PaintingID: paintingID}
	return r.db.WithContext(ctx).Create(&save).Error
}

func (r *userRepository) UnsavePainting(ctx context.Context, userID, paintingID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND painting_id = ?", userID, paintingID).
		Delete(&models.SavedPainting{}).Error
}
