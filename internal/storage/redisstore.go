package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ssp:"

// RedisStore keeps each collection as a single JSON array value, so
// mutations stay whole-collection read-modify-writes like the other
// backends.
type RedisStore struct {
	mu     sync.Mutex
	client *redis.Client
}

func NewRedisStore(redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func redisKey(collection string) string {
	return redisKeyPrefix + collection
}

func (s *RedisStore) read(ctx context.Context, collection string) ([]json.RawMessage, error) {
	data, err := s.client.Get(ctx, redisKey(collection)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("failed to read collection %s: %w", collection, err)
	}
	return decodeCollection(data), nil
}

func (s *RedisStore) write(ctx context.Context, collection string, records []json.RawMessage) error {
	data, err := encodeCollection(records)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisKey(collection), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write collection %s: %w", collection, err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(ctx, collection)
}

func (s *RedisStore) Add(ctx context.Context, collection string, record json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(ctx, collection)
	if err != nil {
		return err
	}
	return s.write(ctx, collection, append(records, record))
}

func (s *RedisStore) Update(ctx context.Context, collection, idField string, record json.RawMessage) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(ctx, collection)
	if err != nil {
		return false, err
	}
	records, matched := replaceMatch(records, idField, record)
	if !matched {
		return false, nil
	}
	return true, s.write(ctx, collection, records)
}

func (s *RedisStore) Delete(ctx context.Context, collection, idField, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(ctx, collection)
	if err != nil {
		return 0, err
	}
	records, removed := dropMatches(records, idField, id)
	if removed == 0 {
		return 0, nil
	}
	return removed, s.write(ctx, collection, records)
}

func (s *RedisStore) Replace(ctx context.Context, collection string, records []json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(ctx, collection, records)
}

func (s *RedisStore) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(Collections))
	for _, name := range Collections {
		keys = append(keys, redisKey(name))
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear collections: %w", err)
	}
	return nil
}
