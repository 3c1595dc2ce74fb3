// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"artcanvas/internal/models"

	"gorm.io/gorm"
)

// BoardRepository defines the interface for board data operations
type BoardRepository interface {
	Create(ctx context.Context, board *models.Board) error
	GetByID(ctx context.Context, id uint) (*models.Board, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Board, error)
	AddPainting(ctx context.Context, boardID, paintingID uint) error
	RemovePainting(ctx context.Context, boardID, paintingID uint) error
	Delete(ctx context.Context, id uint) error
}

type boardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new board repository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

func (r *boardRepository) Create(ctx context.Context, board *models.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

// GetByID loads a board and fills its paintings in the order they were added.
func (r *boardRepository) GetByID(ctx context.Context, id uint) (*models.Board, error) {
	var board models.Board
	if err := r.db.WithContext(ctx).First(&board, id).Error; err != nil {
		return nil, err
	}

	err := r.db.WithContext(ctx).
		Joins("JOIN board_paintings ON board_paintings.painting_id = paintings.id").
		Where("board_paintings.board_id = ?", id).
		Order("board_paintings.position ASC").
		Find(&board.Paintings).Error
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *boardRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Board, error) {
	var boards []*models.Board
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&boards).Error
	return boards, err
}

// AddPainting appends a painting to a board. Adding a painting that is
// already on the board is a validation error.
func (r *boardRepository) AddPainting(ctx context.Context, boardID, paintingID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.BoardPainting{}).
			Where("board_id = ? AND painting_id = ?", boardID, paintingID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return models.NewValidationError("Painting already added to board")
		}

		var next int64
		if err := tx.Model(&models.BoardPainting{}).
			Where("board_id = ?", boardID).
			Count(&next).Error; err != nil {
			return err
		}

		entry := models.BoardPainting{
			BoardID:    boardID,
			PaintingID: paintingID,
			Position:   int(next),
		}
		return tx.Create(&entry).Error
	})
}

// RemovePainting filters a painting out of a board. Removing a painting that
// is not on the board succeeds as a no-op.
func (r *boardRepository) RemovePainting(ctx context.Context, boardID, paintingID uint) error {
	return r.db.WithContext(ctx).
		Where("board_id = ? AND painting_id = ?", boardID, paintingID).
		Delete(&models.BoardPainting{}).Error
}

// Delete removes a board and its painting memberships in a single transaction.
func (r *boardRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ?", id).Delete(&models.BoardPainting{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Board{}, id).Error
	})
}
