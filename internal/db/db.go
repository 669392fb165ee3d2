// Package db locates and manages the project's development database.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "modernc.org/sqlite"

	"chore/internal/log"
	"chore/internal/shell"
)

// RelPath is the database location relative to the project root.
const RelPath = "prisma/dev.db"

// Locate walks upward from startDir until RelPath exists as a regular file.
// Reaching the filesystem root without finding it is an error naming the
// searched path.
func Locate(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", startDir, err)
	}
	for {
		candidate := filepath.Join(dir, filepath.FromSlash(RelPath))
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found between %s and the filesystem root", RelPath, startDir)
		}
		dir = parent
	}
}

// Clear deletes every row from user tables in one transaction, then resets
// the autoincrement sequence table best-effort (it only exists once an
// AUTOINCREMENT column has been used).
func Clear(ctx context.Context, path string) error {
	sqlDB, err := open(ctx, path)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	tables, err := userTables(ctx, sqlDB)
	if err != nil {
		return err
	}

	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range tables {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %q;`, table)); err != nil {
			return fmt.Errorf("clear table %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear: %w", err)
	}

	if _, err := sqlDB.ExecContext(ctx, `DELETE FROM sqlite_sequence;`); err != nil {
		log.WithComponent("db").Debug("sqlite_sequence reset skipped", "error", err)
	}
	return nil
}

// Tables returns the user table names in path, excluding sqlite internals.
func Tables(ctx context.Context, path string) ([]string, error) {
	sqlDB, err := open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer sqlDB.Close()
	return userTables(ctx, sqlDB)
}

// OpenViewer hands the database file to a desktop viewer. CHORE_DB_VIEWER
// overrides the platform opener.
func OpenViewer(path string) error {
	if viewer := os.Getenv("CHORE_DB_VIEWER"); viewer != "" {
		return shell.StartDetached(viewer, path)
	}
	switch runtime.GOOS {
	case "darwin":
		return shell.StartDetached("open", path)
	case "windows":
		return shell.StartDetached("cmd", "/c", "start", "", path)
	default:
		return shell.StartDetached("xdg-open", path)
	}
}

func open(ctx context.Context, path string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := sqlDB.ExecContext(pctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("set busy_timeout: %w", err)
	}
	return sqlDB, nil
}

func userTables(ctx context.Context, sqlDB *sql.DB) ([]string, error) {
	rows, err := sqlDB.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}
