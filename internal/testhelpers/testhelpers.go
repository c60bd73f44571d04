package testhelpers

import (
	"context"
	"database/sql"
	"testing"

	"github.com/octobees/outreach-campaigns/api/internal/database"
)

// NewTestDB returns a migrated in-memory SQLite database configured the same way
// as local development. It is closed automatically when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := database.MigrateSQLite(context.Background(), db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return db
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
