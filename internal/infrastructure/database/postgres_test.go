package database

import (
	"io/fs"
	"testing"

	"go-medical-appointment/config"
	"go-medical-appointment/migrations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationURL(t *testing.T) {
	url := MigrationURL(config.DBConfig{
		Host:     "db",
		Port:     "5432",
		User:     "app",
		Password: "p@ss word",
		Name:     "clinic",
		SSLMode:  "disable",
	})

	assert.Equal(t, "pgx5://app:p%40ss%20word@db:5432/clinic?sslmode=disable", url)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrations.FS, "*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrations.FS, "*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}
