package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bagdasarian/staff-portal/internal/domain"
	"github.com/bagdasarian/staff-portal/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitRepository(t *testing.T) {
	cols := []string{"id", "name", "folder_id", "storage_mode", "created_at", "updated_at"}

	t.Run("создание юнита", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUnitRepository(db)
		now := time.Now()

		mock.ExpectQuery("INSERT INTO units").
			WithArgs("u1", "Finance", "F1", "cloud", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

		unit := &domain.Unit{ID: "u1", Name: "Finance", FolderID: "F1", StorageMode: domain.StorageCloud, CreatedAt: now}
		require.NoError(t, repo.Create(context.Background(), unit))
	})

	t.Run("чтение по имени", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUnitRepository(db)

		mock.ExpectQuery("FROM units WHERE lower\\(name\\) = lower\\(\\$1\\)").
			WithArgs("finance").
			WillReturnRows(sqlmock.NewRows(cols).AddRow("u1", "Finance", "", "local", time.Now(), nil))

		unit, err := repo.GetByName(context.Background(), "finance")

		require.NoError(t, err)
		assert.Equal(t, domain.StorageLocal, unit.StorageMode)
	})

	t.Run("обновление хранилища несуществующего юнита", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUnitRepository(db)

		mock.ExpectExec("UPDATE units").
			WithArgs("u404", "F1", "cloud", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStorage(context.Background(), "u404", "F1", domain.StorageCloud)

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
