package sqlite

import (
	"database/sql"
	"time"
)

// storeTx groups the statements of one write
type storeTx struct {
	tx *sql.Tx
}

// putValue inserts or replaces the current value for key
func (t *storeTx) putValue(key, value string, at time.Time) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
	`, key, value, at.UnixMilli())
	return err
}

// appendRevision records a write of size bytes
func (t *storeTx) appendRevision(key string, size int, at time.Time) error {
	_, err := t.tx.Exec(`
		INSERT INTO revisions (key, size, saved_at)
		VALUES (?, ?, ?)
	`, key, size, at.UnixMilli())
	return err
}

// pruneRevisions keeps only the newest keep revisions for key
func (t *storeTx) pruneRevisions(key string, keep int) error {
	_, err := t.tx.Exec(`
		DELETE FROM revisions
		WHERE key = ? AND id NOT IN (
			SELECT id FROM revisions WHERE key = ? ORDER BY id DESC LIMIT ?
		)
	`, key, key, keep)
	return err
}

// Commit commits the transaction
func (t *storeTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *storeTx) Rollback() error {
	return t.tx.Rollback()
}
