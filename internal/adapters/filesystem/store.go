package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"scrivano/internal/ports"
)

// Store implements ports.Storage with one file per key inside a directory.
// Writes go to a temp file first and are renamed into place.
type Store struct {
	mu  sync.Mutex
	dir string
}

var _ ports.Storage = (*Store)(nil)

// NewStore creates a store rooted at dir
func NewStore(dir string) *Store {
	// Expand ~ to home directory
	if strings.HasPrefix(dir, "~") {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, dir[1:])
	}
	return &Store{dir: dir}
}

// Dir returns the directory the store writes to
func (s *Store) Dir() string {
	return s.dir
}

// Get reads the file for key. A missing file is reported as absent.
func (s *Store) Get(key string) (string, bool, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return "", false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), true, nil
}

// Set replaces the file for key
func (s *Store) Set(key, value string) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return writeAtomic(path, []byte(value))
}

func (s *Store) pathFor(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// writeAtomic writes data to a temp file in the target directory and renames it over path
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
