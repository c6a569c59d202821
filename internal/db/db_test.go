package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPgx5URL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@h:5432/d?sslmode=disable", pgx5URL("postgres://u:p@h:5432/d?sslmode=disable"))
	assert.Equal(t, "pgx5://u@h/d", pgx5URL("postgresql://u@h/d"))
	assert.Equal(t, "pgx5://already", pgx5URL("pgx5://already"))
}
