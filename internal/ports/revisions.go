package ports

import "time"

// Revision is one write recorded by a storage backend that keeps a log
type Revision struct {
	ID      int64
	Key     string
	SavedAt time.Time
	Size    int // Length of the stored blob in bytes
}

// RevisionLog is implemented by storage backends that keep every write
type RevisionLog interface {
	// Revisions returns up to limit revisions for key, newest first
	Revisions(key string, limit int) ([]Revision, error)
}
