package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	cdsco "github.com/Mainak-dev/cdsco-deepseek"
)

// Compile-time interface verification.
var _ cdsco.CacheStore = (*CacheStore)(nil)

// CacheStore implements cdsco.CacheStore using SQLite.
type CacheStore struct {
	db *DB
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(db *DB) *CacheStore {
	return &CacheStore{db: db}
}

// Get returns the entry for key, or ENOTFOUND if absent.
func (s *CacheStore) Get(ctx context.Context, key string) (*cdsco.CacheEntry, error) {
	var entry cdsco.CacheEntry
	var fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT key, text, content_hash, fetched_at
		FROM cache_entries
		WHERE key = ?
	`, key).Scan(&entry.Key, &entry.Text, &entry.ContentHash, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, cdsco.Errorf(cdsco.ENOTFOUND, "cache entry %q not found", key)
	}
	if err != nil {
		return nil, err
	}

	entry.FetchedAt, err = time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fetched_at: %w", err)
	}

	return &entry, nil
}

// Put inserts or replaces the entry for entry.Key.
func (s *CacheStore) Put(ctx context.Context, entry *cdsco.CacheEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, text, content_hash, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			text = excluded.text,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
	`, entry.Key, entry.Text, entry.ContentHash, entry.FetchedAt.UTC().Format(time.RFC3339Nano))

	return err
}

// DeleteExpired removes entries fetched before the cutoff.
func (s *CacheStore) DeleteExpired(ctx context.Context, cutoff time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM cache_entries
		WHERE fetched_at < ?
	`, cutoff.UTC().Format(time.RFC3339Nano))

	return err
}
