// Package dbtest opens throwaway sqlite databases with the schema applied.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/wellpath/portal/internal/db"
)

// New returns a migrated database in t.TempDir(). It is closed on cleanup.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "wellness.db")
	conn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	database, err := db.Init(db.DriverSQLite, conn)
	require.NoError(t, err)

	// One connection keeps concurrent test writers serialized instead of
	// racing into SQLITE_BUSY.
	database.SetMaxOpenConns(1)

	require.NoError(t, db.RunMigrations(database.DB, db.DriverSQLite))

	t.Cleanup(func() {
		database.Close()
	})
	return database
}
