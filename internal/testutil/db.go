// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"strings"
	"testing"

	"dairy-pos/internal/database"

	"gorm.io/gorm"
)

// MustOpenDB returns a migrated in-memory SQLite database private to t.
//
// The pool is capped at one connection, so concurrent transactions in a test
// queue up behind each other the way row locks serialize them on MySQL.
func MustOpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := "file:" + name + "?mode=memory&cache=shared&_foreign_keys=0"
	db, err := database.Open("sqlite", dsn, "silent")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
