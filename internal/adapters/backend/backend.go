// Package backend opens the storage backend selected by configuration
package backend

import (
	"fmt"
	"io"

	"scrivano/internal/adapters/filesystem"
	"scrivano/internal/adapters/memory"
	"scrivano/internal/adapters/sqlite"
	"scrivano/internal/config"
	"scrivano/internal/ports"
)

// Backend is an opened storage backend.
// Revisions is nil for backends that do not keep a revision log.
type Backend struct {
	Name      string
	Storage   ports.Storage
	Revisions ports.RevisionLog
	closer    io.Closer
}

// Open opens the backend named by cfg.Backend inside cfg.DataDir
func Open(cfg *config.Config) (*Backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return &Backend{Name: cfg.Backend, Storage: store, Revisions: store, closer: store}, nil
	case config.BackendFile:
		return &Backend{Name: cfg.Backend, Storage: filesystem.NewStore(cfg.DataDir)}, nil
	case config.BackendMemory:
		return &Backend{Name: cfg.Backend, Storage: memory.NewStore()}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// Close releases the backend
func (b *Backend) Close() error {
	if b.closer != nil {
		return b.closer.Close()
	}
	return nil
}
