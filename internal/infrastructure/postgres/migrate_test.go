package postgres

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_Validaciones(t *testing.T) {
	assert.Error(t, Migrate("", MigrateUp))
	for _, dir := range []string{"", "UP", "sideways"} {
		err := Migrate("postgres://localhost/portal", dir)
		require.Error(t, err, dir)
		assert.Contains(t, err.Error(), "dirección")
	}
}

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/portal?sslmode=disable", migrateURL("postgres://u:p@db:5432/portal?sslmode=disable"))
	assert.Equal(t, "pgx5://db/portal", migrateURL("postgresql://db/portal"))
	assert.Equal(t, "pgx5://db/portal", migrateURL("pgx5://db/portal"))
}

func TestMigrationsEmbebidas(t *testing.T) {
	files, err := fs.Glob(migrationFS, "migrations/*.sql")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"migrations/000001_init.up.sql",
		"migrations/000001_init.down.sql",
	}, files)
}
