package persistence

import (
	"testing"

	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/config"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory sqlite database with every table migrated.
// A single pooled connection keeps the in-memory schema alive.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := NewDatabaseFromDialector(sqlite.Open(":memory:"), &config.DatabaseConfig{
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate())
	t.Cleanup(func() { _ = database.Close() })
	return database.DB
}
