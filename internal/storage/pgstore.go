package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps one JSONB row per collection, preserving the
// whole-collection read-modify-write contract.
type PostgresStore struct {
	mu   sync.Mutex
	pool *pgxpool.Pool
}

func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 5
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS collections (
			name TEXT PRIMARY KEY,
			data JSONB NOT NULL DEFAULT '[]'::jsonb,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create collections table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) read(ctx context.Context, collection string) ([]json.RawMessage, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, "SELECT data FROM collections WHERE name = $1", collection).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("failed to read collection %s: %w", collection, err)
	}
	return decodeCollection(data), nil
}

func (s *PostgresStore) write(ctx context.Context, collection string, records []json.RawMessage) error {
	data, err := encodeCollection(records)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO collections (name, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE
		SET data = EXCLUDED.data, updated_at = NOW()
	`, collection, data)
	if err != nil {
		return fmt.Errorf("failed to write collection %s: %w", collection, err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(ctx, collection)
}

func (s *PostgresStore) Add(ctx context.Context, collection string, record json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(ctx, collection)
	if err != nil {
		return err
	}
	return s.write(ctx, collection, append(records, record))
}

func (s *PostgresStore) Update(ctx context.Context, collection, idField string, record json.RawMessage) (bool, error) {
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

func (s *PostgresStore) Delete(ctx context.Context, collection, idField, id string) (int, error) {
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

func (s *PostgresStore) Replace(ctx context.Context, collection string, records []json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(ctx, collection, records)
}

func (s *PostgresStore) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.pool.Exec(ctx, "DELETE FROM collections"); err != nil {
		return fmt.Errorf("failed to clear collections: %w", err)
	}
	return nil
}
