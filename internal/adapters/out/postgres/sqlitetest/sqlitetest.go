// Package sqlitetest opens migrated in-memory record stores for tests.
package sqlitetest

import (
	"io"
	"log/slog"
	"testing"

	"printshop/internal/adapters/out/postgres"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Open returns an empty, migrated in-memory SQLite database closed at the end
// of the test.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := postgres.Open(postgres.DatabaseConfig{Driver: postgres.DriverSQLite},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, postgres.Migrate(db))
	return db
}
