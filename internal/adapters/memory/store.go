// Package memory provides a storage backend that lives only as long as the process
package memory

import (
	"sync"

	"scrivano/internal/ports"
)

// Store implements ports.Storage with a map
type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ ports.Storage = (*Store)(nil)

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{data: make(map[string]string)}
}

// Get returns the value stored under key
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

// Set stores value under key
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}
