package postgres

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
)

// CacheStore implements ports.Cache on the verdict_cache table. Writes are
// fire-and-forget: the resolution critical path never waits on a cache
// insert, and a failed write is only logged.
type CacheStore struct {
	db *sqlx.DB
}

// NewCacheStore creates a Postgres-backed verdict cache.
func NewCacheStore(db *sqlx.DB) *CacheStore {
	return &CacheStore{db: db}
}

// Get returns the cached payload and true on a fresh hit.
func (s *CacheStore) Get(ctx context.Context, key string) ([]byte, bool) {
	var value []byte
	err := s.db.GetContext(ctx, &value, `
		SELECT value FROM verdict_cache
		WHERE key = $1 AND expires_at > NOW()
	`, key)
	if err != nil {
		return nil, false
	}
	return value, true
}

// Set stores the payload in the background.
func (s *CacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	expiresAt := time.Now().Add(ttl)
	go func() {
		writeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, err := s.db.ExecContext(writeCtx, `
			INSERT INTO verdict_cache (key, value, expires_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (key) DO UPDATE SET value = $2, expires_at = $3
		`, key, value, expiresAt)
		if err != nil {
			log.Printf("[Cache] Write failed for key %s: %v", key, err)
		}
	}()
}
