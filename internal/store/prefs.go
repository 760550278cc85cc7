// Package store provides the preference persistence backends behind
// theme.Store.
package store

import (
	"encoding/json"
	"log"
	"os"
	"sync"
)

// MemoryStore is a concurrency-safe in-memory key-value store. Used in
// tests and as the fallback when no preferences file is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *MemoryStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

// FileStore keeps preferences in a flat JSON file, the server-side
// stand-in for the browser's local storage. Writes are best-effort:
// a failed write is logged and the in-memory view stays authoritative.
type FileStore struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// NewFileStore loads existing preferences from path. A missing or
// malformed file is treated as empty, not as an error.
func NewFileStore(path string) *FileStore {
	s := &FileStore{path: path, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		log.Printf("INFO: ignoring malformed preferences file %s: %v", path, err)
		s.data = make(map[string]string)
	}
	return s
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *FileStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value

	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err == nil {
		err = os.WriteFile(s.path, raw, 0o644)
	}
	if err != nil {
		log.Printf("ERROR: failed to persist preferences to %s: %v", s.path, err)
	}
}
