// Package dbtest opens throwaway SQLite databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/uptrace/bun"

	"github.com/padraicbc/recipeapi/config"
	"github.com/padraicbc/recipeapi/db"
)

// Open returns a migrated SQLite database in t's temp dir, closed on cleanup.
func Open(t testing.TB) *bun.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "recipes.db") + "?_foreign_keys=on"
	bdb, err := db.Open(context.Background(), config.DriverSQLite, dsn, false)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = bdb.Close() })

	if err := db.CreateTables(context.Background(), bdb); err != nil {
		t.Fatalf("create tables: %v", err)
	}
	return bdb
}
