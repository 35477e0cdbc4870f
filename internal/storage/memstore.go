package storage

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore is an in-process Store used for tests and throwaway runs.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]json.RawMessage)}
}

func (s *MemoryStore) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.data[collection]
	out := make([]json.RawMessage, len(records))
	copy(out, records)
	return out, nil
}

func (s *MemoryStore) Add(ctx context.Context, collection string, record json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[collection] = append(s.data[collection], record)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, collection, idField string, record json.RawMessage) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, matched := replaceMatch(s.data[collection], idField, record)
	if matched {
		s.data[collection] = records
	}
	return matched, nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, idField, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, removed := dropMatches(s.data[collection], idField, id)
	if removed > 0 {
		s.data[collection] = records
	}
	return removed, nil
}

func (s *MemoryStore) Replace(ctx context.Context, collection string, records []json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]json.RawMessage, len(records))
	copy(out, records)
	s.data[collection] = out
	return nil
}

func (s *MemoryStore) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string][]json.RawMessage)
	return nil
}
