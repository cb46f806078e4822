package store

import (
	"database/sql"
	"testing"

	"github.com/jklemm/hearthside/internal/database"
	"github.com/jklemm/hearthside/internal/model"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *sql.DB, email string) *model.User {
	t.Helper()
	user, err := NewUserStore(db).Create(email, "Test User", "correct horse battery")
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}
