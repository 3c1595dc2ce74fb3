package repository

import (
	"context"
	"errors"
	"testing"

	"artcanvas/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB creates a GORM handle backed by sqlmock for error-path tests.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestUserRepository_GetByID_Errors(t *testing.T) {
	t.Run("Missing row maps to a not-found AppError", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := NewUserRepository(gormDB)

		mock.ExpectQuery("SELECT").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(context.Background(), 42)
		require.Error(t, err)

		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, 404, appErr.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Driver failure maps to an internal AppError", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := NewUserRepository(gormDB)

		mock.ExpectQuery("SELECT").
			WillReturnError(errors.New("connection reset"))

		_, err := repo.GetByID(context.Background(), 42)
		require.Error(t, err)

		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, 500, appErr.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPaintingRepository_ListPropagatesErrors(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewPaintingRepository(gormDB)

	mock.ExpectQuery("SELECT").
		WillReturnError(errors.New("relation does not exist"))

	_, err := repo.List(context.Background(), 1)
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
