package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the database handle and provides access to repositories.
type Store struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at dsn, applies recommended
// pragmas, and creates the schema if it does not exist.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying handle for raw queries.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Stacks returns the stack and entry repository backed by this store.
func (s *Store) Stacks() *StackRepo {
	return &StackRepo{db: s.db}
}

// Meta returns the meta counter repository backed by this store.
func (s *Store) Meta() *MetaRepo {
	return &MetaRepo{db: s.db}
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func createSchema(db *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS stacks (
			id               TEXT PRIMARY KEY,
			name             TEXT NOT NULL,
			own_language     TEXT NOT NULL DEFAULT '',
			foreign_language TEXT NOT NULL DEFAULT '',
			third_language   TEXT NOT NULL DEFAULT '',
			third_active     INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS entries (
			id              TEXT PRIMARY KEY,
			stack_id        TEXT NOT NULL REFERENCES stacks(id) ON DELETE CASCADE,
			own_text        TEXT NOT NULL,
			foreign_text    TEXT NOT NULL,
			third_text      TEXT NOT NULL DEFAULT '',
			info            TEXT NOT NULL DEFAULT '',
			knowledge_level REAL NOT NULL DEFAULT 0,
			srs_streak      INTEGER NOT NULL DEFAULT 0,
			srs_last_seen   INTEGER,
			srs_due         INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_stack ON entries(stack_id)`,
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. VOKABA_DB environment variable
// 2. $XDG_DATA_HOME/vokaba/vokaba.db
// 3. ~/.local/share/vokaba/vokaba.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("VOKABA_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "vokaba", "vokaba.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
