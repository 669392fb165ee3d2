package db

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func createTestDB(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(RelPath))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer sqlDB.Close()

	stmts := []string{
		`CREATE TABLE users (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT);`,
		`CREATE TABLE posts (id INTEGER PRIMARY KEY, body TEXT);`,
		`INSERT INTO users (name) VALUES ('a'), ('b');`,
		`INSERT INTO posts VALUES (1, 'hello');`,
	}
	for _, stmt := range stmts {
		if _, err := sqlDB.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	return path
}

func TestLocate_WalksUpward(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	path := createTestDB(t, root)

	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := Locate(nested)
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if got != path {
		t.Errorf("located %q, want %q", got, path)
	}
}

func TestLocate_NotFoundNamesPath(t *testing.T) {
	t.Parallel()
	_, err := Locate(t.TempDir())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), RelPath) {
		t.Errorf("error should name the searched path: %v", err)
	}
}

func TestClear_EmptiesUserTables(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	path := createTestDB(t, root)
	ctx := context.Background()

	if err := Clear(ctx, path); err != nil {
		t.Fatalf("clear: %v", err)
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer sqlDB.Close()

	for _, table := range []string{"users", "posts"} {
		var n int
		if err := sqlDB.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 0 {
			t.Errorf("%s has %d rows after clear", table, n)
		}
	}

	// Autoincrement restarts from 1 after the sequence reset.
	if _, err := sqlDB.Exec(`INSERT INTO users (name) VALUES ('c');`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	var id int
	if err := sqlDB.QueryRow(`SELECT id FROM users`).Scan(&id); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if id != 1 {
		t.Errorf("autoincrement id = %d, want 1", id)
	}
}

func TestClear_NoSequenceTable(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	path := filepath.Join(root, filepath.FromSlash(RelPath))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	// No AUTOINCREMENT column anywhere, so sqlite_sequence never exists.
	if _, err := sqlDB.Exec(`CREATE TABLE plain (id INTEGER PRIMARY KEY);`); err != nil {
		t.Fatalf("exec: %v", err)
	}
	sqlDB.Close()

	if err := Clear(context.Background(), path); err != nil {
		t.Fatalf("clear should tolerate a missing sequence table: %v", err)
	}
}

func TestTables(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	path := createTestDB(t, root)

	tables, err := Tables(context.Background(), path)
	if err != nil {
		t.Fatalf("tables: %v", err)
	}
	want := []string{"posts", "users"}
	if len(tables) != 2 || tables[0] != want[0] || tables[1] != want[1] {
		t.Errorf("tables = %v, want %v", tables, want)
	}
}
