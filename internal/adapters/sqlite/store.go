package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"scrivano/internal/ports"

	_ "github.com/mattn/go-sqlite3"
)

const (
	schemaVersion = "1"

	// DatabaseFile is the file name created inside the data directory
	DatabaseFile = "scrivano.db"

	// DefaultRevisionLimit is how many revisions are kept per key
	DefaultRevisionLimit = 200
)

// Store implements ports.Storage and ports.RevisionLog using SQLite.
// Every Set replaces the current value and appends a revision row.
type Store struct {
	db            *sql.DB
	dbPath        string
	revisionLimit int
}

var (
	_ ports.Storage     = (*Store)(nil)
	_ ports.RevisionLog = (*Store)(nil)
)

// Open opens or creates the database inside dataDir
func Open(dataDir string) (*Store, error) {
	return OpenFile(databasePath(dataDir))
}

// OpenFile opens or creates the database at an explicit path
func OpenFile(dbPath string) (*Store, error) {
	dbPath = expandHome(dbPath)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// WAL keeps the CLI readable while the TUI holds the file
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Pragmas + schema in single batch
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS revisions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			key TEXT NOT NULL,
			size INTEGER NOT NULL,
			saved_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_revisions_key ON revisions(key, id);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath, revisionLimit: DefaultRevisionLimit}
	if err := s.updateMeta(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.dbPath
}

// SetRevisionLimit changes how many revisions are kept per key. Non-positive disables pruning.
func (s *Store) SetRevisionLimit(n int) {
	s.revisionLimit = n
}

// SchemaVersion returns the schema version recorded in the meta table
func (s *Store) SchemaVersion() (string, error) {
	var version string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	return version, err
}

func (s *Store) updateMeta() error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion)
	return err
}

// Get returns the value stored under key
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set replaces the value under key and records a revision, atomically
func (s *Store) Set(key, value string) (err error) {
	tx, err := s.beginTx()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	now := time.Now()
	if err = tx.putValue(key, value, now); err != nil {
		return err
	}
	if err = tx.appendRevision(key, len(value), now); err != nil {
		return err
	}
	if s.revisionLimit > 0 {
		if err = tx.pruneRevisions(key, s.revisionLimit); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Revisions returns up to limit revisions for key, newest first.
// A non-positive limit returns all of them.
func (s *Store) Revisions(key string, limit int) ([]ports.Revision, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.Query(`
		SELECT id, key, size, saved_at
		FROM revisions WHERE key = ?
		ORDER BY id DESC
		LIMIT ?
	`, key, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var revisions []ports.Revision
	for rows.Next() {
		var r ports.Revision
		var savedAt int64
		if err := rows.Scan(&r.ID, &r.Key, &r.Size, &savedAt); err != nil {
			return nil, err
		}
		r.SavedAt = time.UnixMilli(savedAt)
		revisions = append(revisions, r)
	}

	return revisions, rows.Err()
}

func (s *Store) beginTx() (*storeTx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	return &storeTx{tx: tx}, nil
}

// databasePath returns the database path inside dataDir
func databasePath(dataDir string) string {
	return filepath.Join(dataDir, DatabaseFile)
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
