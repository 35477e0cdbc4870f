package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	filePermissions = 0644
	tmpSuffix       = ".tmp"
)

// FileStore persists each collection as a JSON array in its own file
// under dir. Writes go to a temp file first and are renamed into place.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &FileStore{dir: dir}

	// Seed missing collection files with empty arrays
	for _, name := range Collections {
		path := s.path(name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte("[]"), filePermissions); err != nil {
				return nil, fmt.Errorf("failed to initialize collection %s: %w", name, err)
			}
		}
	}

	return s, nil
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func (s *FileStore) read(collection string) []json.RawMessage {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		return []json.RawMessage{}
	}
	return decodeCollection(data)
}

func (s *FileStore) write(collection string, records []json.RawMessage) error {
	data, err := encodeCollection(records)
	if err != nil {
		return err
	}

	// Write to temp file first, then rename into place
	path := s.path(collection)
	tmpFile := path + tmpSuffix
	if err := os.WriteFile(tmpFile, data, filePermissions); err != nil {
		return fmt.Errorf("failed to write collection %s: %w", collection, err)
	}
	return os.Rename(tmpFile, path)
}

func (s *FileStore) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(collection), nil
}

func (s *FileStore) Add(ctx context.Context, collection string, record json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(collection, append(s.read(collection), record))
}

func (s *FileStore) Update(ctx context.Context, collection, idField string, record json.RawMessage) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, matched := replaceMatch(s.read(collection), idField, record)
	if !matched {
		return false, nil
	}
	return true, s.write(collection, records)
}

func (s *FileStore) Delete(ctx context.Context, collection, idField, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, removed := dropMatches(s.read(collection), idField, id)
	if removed == 0 {
		return 0, nil
	}
	return removed, s.write(collection, records)
}

func (s *FileStore) Replace(ctx context.Context, collection string, records []json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(collection, records)
}

func (s *FileStore) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range Collections {
		if err := s.write(name, nil); err != nil {
			return err
		}
	}
	return nil
}
