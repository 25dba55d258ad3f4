// Package ledger implements the build ledger: a flat JSON file recording
// the fingerprint of every produced artifact per (variant, abi, library).
package ledger

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.spelunk.dev/ndkbridge/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.ArtifactStore using a flat JSON file.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.ArtifactRecord
}

// NewStore creates a new ArtifactStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.ArtifactRecord),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read ledger")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.Wrap(err, "failed to unmarshal ledger")
	}

	return nil
}

func (s *Store) save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal ledger")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create ledger directory")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write ledger")
	}

	return nil
}

// Get retrieves the record for a ledger key.
func (s *Store) Get(key string) (*domain.ArtifactRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.cache[key]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Put stores the record.
func (s *Store) Put(record domain.ArtifactRecord) error {
	s.mu.Lock()
	s.cache[record.Key()] = record
	s.mu.Unlock()

	return s.save()
}
