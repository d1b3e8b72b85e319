// Package storage is the client's durable local store: one JSON file
// per key under a namespace directory. It is the Go counterpart of the
// browser's localStorage. All writes happen from a single process, so
// no cross-process locking is attempted.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store persists keyed JSON values under a directory.
type Store struct {
	dir string
}

// New creates the namespace directory if needed and returns the store.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("storage: empty directory")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the namespace directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(key string) string {
	// Keys are fixed identifiers like "cart-storage"; path separators
	// are rejected rather than escaped.
	return filepath.Join(s.dir, key+".json")
}

func validKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("storage: invalid key %q", key)
	}
	return nil
}

// Set writes value under key, replacing any previous value. The write
// goes through a temp file and rename so a crash never leaves a
// half-written mirror.
func (s *Store) Set(key string, value interface{}) error {
	if err := validKey(key); err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}

// Get reads the value stored under key into out. The boolean reports
// whether the key existed.
func (s *Store) Get(key string, out interface{}) (bool, error) {
	if err := validKey(key); err != nil {
		return false, err
	}
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

// Has reports whether key exists without reading it.
func (s *Store) Has(key string) bool {
	if validKey(key) != nil {
		return false
	}
	_, err := os.Stat(s.path(key))
	return err == nil
}

// Remove deletes the value stored under key. Removing an absent key is
// a no-op.
func (s *Store) Remove(key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}
