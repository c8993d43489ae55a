package mock

import (
	"context"
	"time"

	cdsco "github.com/Mainak-dev/cdsco-deepseek"
)

var _ cdsco.TextCache = (*TextCache)(nil)

// TextCache is a mock implementation of cdsco.TextCache.
type TextCache struct {
	GetTextFn func(ctx context.Context, ref cdsco.DocumentRef) (string, error)
}

func (c *TextCache) GetText(ctx context.Context, ref cdsco.DocumentRef) (string, error) {
	return c.GetTextFn(ctx, ref)
}

var _ cdsco.CacheStore = (*CacheStore)(nil)

// CacheStore is a mock implementation of cdsco.CacheStore.
type CacheStore struct {
	GetFn           func(ctx context.Context, key string) (*cdsco.CacheEntry, error)
	PutFn           func(ctx context.Context, entry *cdsco.CacheEntry) error
	DeleteExpiredFn func(ctx context.Context, cutoff time.Time) error
}

func (s *CacheStore) Get(ctx context.Context, key string) (*cdsco.CacheEntry, error) {
	return s.GetFn(ctx, key)
}

func (s *CacheStore) Put(ctx context.Context, entry *cdsco.CacheEntry) error {
	return s.PutFn(ctx, entry)
}

func (s *CacheStore) DeleteExpired(ctx context.Context, cutoff time.Time) error {
	return s.DeleteExpiredFn(ctx, cutoff)
}
