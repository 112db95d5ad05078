package pgmigrate

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func TestExtractUpMigration(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "no markers returns whole content",
			content: "CREATE TABLE a(id TEXT);",
			want:    "CREATE TABLE a(id TEXT);",
		},
		{
			name:    "up and down sections",
			content: "-- +migrate Up\nCREATE TABLE a(id TEXT);\n-- +migrate Down\nDROP TABLE a;",
			want:    "\nCREATE TABLE a(id TEXT);\n",
		},
		{
			name:    "up without down",
			content: "-- +migrate Up\nCREATE TABLE a(id TEXT);",
			want:    "\nCREATE TABLE a(id TEXT);",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractUpMigration(tc.content); got != tc.want {
				t.Fatalf("ExtractUpMigration() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestIsAlreadyExistsError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "duplicate table code", err: &pgconn.PgError{Code: "42P07"}, want: true},
		{name: "duplicate column code", err: &pgconn.PgError{Code: "42701"}, want: true},
		{name: "wrapped duplicate object", err: fmt.Errorf("exec: %w", &pgconn.PgError{Code: "42710"}), want: true},
		{name: "syntax error code", err: &pgconn.PgError{Code: "42601", Message: "syntax error"}, want: false},
		{name: "textual already exists", err: errors.New(`relation "users" already exists`), want: true},
		{name: "unrelated", err: errors.New("connection refused"), want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsAlreadyExistsError(tc.err); got != tc.want {
				t.Fatalf("IsAlreadyExistsError() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestApplyMigrationsNilDB(t *testing.T) {
	err := ApplyMigrations(nil, fstest.MapFS{}, "")
	if err == nil {
		t.Fatal("expected error for nil db")
	}
	if !strings.Contains(err.Error(), "sql db is required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

// openTestDB connects to the database named by TROTH_TEST_DATABASE_URL and
// skips the test when the variable is unset. Database-backed tests run only
// against a disposable database.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := strings.TrimSpace(os.Getenv("TROTH_TEST_DATABASE_URL"))
	if dsn == "" {
		t.Skip("TROTH_TEST_DATABASE_URL not set")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestApplyMigrationsRecordsApplied(t *testing.T) {
	db := openTestDB(t)
	dropMigrationState(t, db, "pgm_items")

	migrations := fstest.MapFS{
		"001_create.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREATE TABLE pgm_items(id TEXT PRIMARY KEY);"),
		},
	}

	if err := ApplyMigrations(db, migrations, ""); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	rows := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations WHERE name = '001_create.sql'")
	if rows != 1 {
		t.Fatalf("expected 1 migration row, got %d", rows)
	}

	if err := ApplyMigrations(db, migrations, ""); err != nil {
		t.Fatalf("re-apply migrations should be idempotent: %v", err)
	}
	rows = queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations WHERE name = '001_create.sql'")
	if rows != 1 {
		t.Fatalf("expected single migration row after replay, got %d", rows)
	}
}

func dropMigrationState(t *testing.T, db *sql.DB, table string) {
	t.Helper()
	if _, err := db.Exec("DROP TABLE IF EXISTS " + table); err != nil {
		t.Fatalf("drop %s: %v", table, err)
	}
	if _, err := db.Exec("DELETE FROM schema_migrations WHERE name LIKE '001_%'"); err != nil {
		if !strings.Contains(err.Error(), "does not exist") {
			t.Fatalf("reset schema_migrations: %v", err)
		}
	}
}

func queryInt64(t *testing.T, db *sql.DB, query string) int64 {
	t.Helper()
	var value int64
	if err := db.QueryRow(query).Scan(&value); err != nil {
		t.Fatalf("query %q: %v", query, err)
	}
	return value
}
