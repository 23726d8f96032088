package testutil

import (
	"path/filepath"
	"testing"

	sqlstore "github.com/aloks98/tasktracker/store/sql"
)

// SetupSQLite returns a migrated store backed by a SQLite file in a
// per-test temporary directory.
func SetupSQLite(t testing.TB) *sqlstore.Store {
	t.Helper()
	return SetupSQLiteWithPrefix(t, "")
}

// SetupSQLiteWithPrefix is SetupSQLite with a custom table prefix.
func SetupSQLiteWithPrefix(t testing.TB, tablePrefix string) *sqlstore.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tasktracker.db")
	return open(t, &sqlstore.Config{
		Dialect:     sqlstore.SQLite,
		DSN:         "file:" + path + "?_foreign_keys=on&_busy_timeout=5000",
		TablePrefix: tablePrefix,
	})
}
