package postgres

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@h:5432/db?sslmode=disable", migrateURL("postgres://u:p@h:5432/db?sslmode=disable"))
	assert.Equal(t, "pgx5://u:p@h/db", migrateURL("postgresql://u:p@h/db"))
	assert.Equal(t, "pgx5://x", migrateURL("pgx5://x"))
}

func TestMigracionesEmbebidas_ParesUpDown(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	ups, downs := 0, 0
	for _, f := range files {
		switch {
		case len(f) > 7 && f[len(f)-7:] == ".up.sql":
			ups++
		case len(f) > 9 && f[len(f)-9:] == ".down.sql":
			downs++
		}
	}
	assert.Equal(t, ups, downs)
}

func TestValidID(t *testing.T) {
	assert.True(t, validID("7f2c1f7e-8a0b-4b55-9d1a-0c3a5e0f1d2b"))
	assert.False(t, validID("no-es-uuid"))
	assert.False(t, validID(""))
}
