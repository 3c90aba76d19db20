package database_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productos/internal/config"
	"productos/internal/database"
	"productos/internal/models"
)

func TestOpenSQLite(t *testing.T) {
	cfg := &config.Config{
		DBDriver:       config.DriverSQLite,
		DatabaseURL:    filepath.Join(t.TempDir(), "productos.db"),
		DBMaxOpenConns: 1,
	}

	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	assert.True(t, db.Migrator().HasTable(models.ProductTable))
	for _, f := range models.ProductSchema.Fields {
		assert.True(t, db.Migrator().HasColumn(&models.Product{}, f.Column), "column %s", f.Column)
	}

	// Migrating twice is a no-op.
	assert.NoError(t, database.Migrate(db))
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := database.Open(&config.Config{DBDriver: config.DriverMemory, DBMaxOpenConns: 1})
	assert.Error(t, err)
}
