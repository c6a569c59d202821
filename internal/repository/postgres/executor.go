package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bagdasarian/staff-portal/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBExecutor общий интерфейс *sql.DB и *sql.Tx
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const uniqueViolation = "23505"

// mapError переводит ошибки драйвера в ошибки репозитория.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", repository.ErrConflict, pgErr.ConstraintName)
	}
	return err
}

func expectOneRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if t.Valid {
		return &t.Time
	}
	return nil
}

func nullStringPtr(s sql.NullString) *string {
	if s.Valid {
		return &s.String
	}
	return nil
}

// placeholders возвращает "$start, $start+1, ..." для n аргументов.
func placeholders(start, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ", ")
}

func splitAgg(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "|")
}
