package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bagdasarian/staff-portal/internal/domain"
	"github.com/bagdasarian/staff-portal/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDivisionRepo(t *testing.T) (*divisionRepository, sqlmock.Sqlmock) {
	db, mock := setupMockDB(t)
	return NewDivisionRepository(db), mock
}

func TestDivisionRepository_Create(t *testing.T) {
	t.Run("подразделение с участниками в транзакции", func(t *testing.T) {
		repo, mock := setupDivisionRepo(t)
		now := time.Now()

		division := &domain.Division{
			ID:   "d1",
			Name: "IT",
			Members: []domain.DivisionMember{
				{StaffID: "s1", Role: "lead"},
				{StaffID: "s2"},
			},
		}

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO divisions").
			WithArgs("d1", "IT", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
		mock.ExpectExec("INSERT INTO division_memberships").
			WithArgs("d1", "s1", "lead", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO division_memberships").
			WithArgs("d1", "s2", "member", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Create(context.Background(), division)

		require.NoError(t, err)
		assert.Equal(t, now, division.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("конфликт имени откатывает транзакцию", func(t *testing.T) {
		repo, mock := setupDivisionRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO divisions").
			WillReturnError(&pgconn.PgError{Code: "23505"})
		mock.ExpectRollback()

		err := repo.Create(context.Background(), &domain.Division{ID: "d1", Name: "IT"})

		assert.ErrorIs(t, err, repository.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ошибка членства откатывает транзакцию", func(t *testing.T) {
		repo, mock := setupDivisionRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO divisions").
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
		mock.ExpectExec("INSERT INTO division_memberships").
			WillReturnError(errors.New("fk violation"))
		mock.ExpectRollback()

		err := repo.Create(context.Background(), &domain.Division{ID: "d1", Name: "IT", Members: []domain.DivisionMember{{StaffID: "s9"}}})

		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDivisionRepository_GetByName(t *testing.T) {
	t.Run("подразделение с участниками", func(t *testing.T) {
		repo, mock := setupDivisionRepo(t)
		now := time.Now()

		mock.ExpectQuery("FROM divisions").
			WithArgs("IT").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).AddRow("d1", "IT", now, nil))
		mock.ExpectQuery("FROM division_memberships").
			WithArgs("d1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email", "role", "is_active"}).
				AddRow("s1", "Alice", "a@example.org", "lead", true).
				AddRow("s2", "Bob", "b@example.org", "member", false))

		division, err := repo.GetByName(context.Background(), "IT")

		require.NoError(t, err)
		assert.Equal(t, "d1", division.ID)
		require.Len(t, division.Members, 2)
		assert.Equal(t, "lead", division.Members[0].Role)
		assert.False(t, division.Members[1].IsActive)
	})

	t.Run("подразделение не найдено", func(t *testing.T) {
		repo, mock := setupDivisionRepo(t)

		mock.ExpectQuery("FROM divisions").
			WithArgs("nope").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}))

		division, err := repo.GetByName(context.Background(), "nope")

		assert.Nil(t, division)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
