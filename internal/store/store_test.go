// store_test.go provides the shared test database helpers for the store
// tests. Every test runs against a migrated SQLite file; the PostgreSQL
// variant is skipped if no server is available.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"vertigo/internal/database"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "vertigo")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "vertigo")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable&connect_timeout=2"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// backend is one database the store tests run against.
type backend struct {
	name    string
	dialect database.Dialect
	open    func(t *testing.T) *sql.DB
}

var backends = []backend{
	{name: "sqlite", dialect: database.SQLite, open: testSQLite},
	{name: "postgres", dialect: database.Postgres, open: testPostgres},
}

// testSQLite opens a migrated SQLite database in a temporary directory.
func testSQLite(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "content.db")
	db, err := database.Connect(context.Background(), database.SQLite, "file:"+path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db, database.SQLite); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

// testPostgres opens the test PostgreSQL database and runs migrations.
// If the database is unavailable, the test is skipped. Rows written under
// the test verticals are removed on cleanup.
func testPostgres(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Connect(context.Background(), database.Postgres, testDSN())
	if err != nil {
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	if err := database.Migrate(db, database.Postgres); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanup := func() {
		db.Exec("DELETE FROM content_items WHERE vertical LIKE 'test-%'")
	}
	cleanup()
	t.Cleanup(func() {
		cleanup()
		db.Close()
	})
	return db
}

// forEachBackend runs fn as a subtest against every available backend.
func forEachBackend(t *testing.T, fn func(t *testing.T, s *ContentStore)) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			fn(t, NewContentStore(b.open(t), b.dialect))
		})
	}
}
