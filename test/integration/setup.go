//go:build integration

package integration

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/bagdasarian/staff-portal/internal/db"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx, "postgres:17.7",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// те же встроенные миграции, что и у команды migrate
	require.NoError(t, db.Migrate(connStr))

	database, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	require.NoError(t, database.Ping())

	t.Cleanup(func() {
		database.Close()
		require.NoError(t, postgresContainer.Terminate(ctx))
	})

	return database
}
