// Package cache memoizes the fetch-and-extract outcome for documents,
// bounded by a validity window, so repeated searches against the same
// corpus avoid re-fetching and re-parsing.
package cache

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"

	cdsco "github.com/Mainak-dev/cdsco-deepseek"
)

// Ensure Cache implements cdsco.TextCache at compile time.
var _ cdsco.TextCache = (*Cache)(nil)

// Cache is a TTL-bounded text cache keyed by DocumentRef.ID. Entries
// live in the configured CacheStore; concurrent requests for the same
// key share one fill, so a document is never fetched twice at once.
type Cache struct {
	fetcher   cdsco.Fetcher
	extractor cdsco.TextExtractor
	store     cdsco.CacheStore
	ttl       time.Duration
	now       func() time.Time
	group     singleflight.Group
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the validity window for cached entries.
// Defaults to cdsco.DefaultCacheTTL (24h) if not specified.
func WithTTL(d time.Duration) Option {
	return func(c *Cache) {
		c.ttl = d
	}
}

// WithStore sets the backing store. Defaults to an in-memory store.
// Use sqlite.NewCacheStore for persistence across process restarts.
func WithStore(s cdsco.CacheStore) Option {
	return func(c *Cache) {
		c.store = s
	}
}

// WithClock overrides the time source. Used by tests to exercise expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates a Cache that fills misses via fetcher and extractor.
func New(fetcher cdsco.Fetcher, extractor cdsco.TextExtractor, opts ...Option) *Cache {
	c := &Cache{
		fetcher:   fetcher,
		extractor: extractor,
		ttl:       cdsco.DefaultCacheTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.store = NewMemoryStore()
	}
	return c
}

// GetText implements cdsco.TextCache. A valid cached entry, including a
// cached empty string from an earlier failed attempt, is returned
// without network I/O. Otherwise the document is fetched, extracted,
// and stored. The fill outcome is stored even on failure (as an empty
// string) so a broken document is not retried until the entry expires.
func (c *Cache) GetText(ctx context.Context, ref cdsco.DocumentRef) (string, error) {
	if err := ref.Validate(); err != nil {
		return "", err
	}

	if entry, err := c.store.Get(ctx, ref.ID); err == nil && !entry.Expired(c.now(), c.ttl) {
		return entry.Text, nil
	}

	v, err, _ := c.group.Do(ref.ID, func() (any, error) {
		// A concurrent fill may have completed while we waited for
		// the flight slot.
		if entry, err := c.store.Get(ctx, ref.ID); err == nil && !entry.Expired(c.now(), c.ttl) {
			return entry.Text, nil
		}
		return c.fill(ctx, ref)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// fill fetches and extracts one document and stores the outcome. The
// returned error reports a failed fetch/extract to the caller that
// triggered the fill; the stored empty entry answers later calls.
func (c *Cache) fill(ctx context.Context, ref cdsco.DocumentRef) (string, error) {
	var text string
	var fillErr error

	data, err := c.fetcher.Fetch(ctx, ref.URL)
	if err != nil {
		fillErr = err
	} else {
		text, fillErr = c.extractor.Extract(ctx, data)
		if fillErr == nil && text == "" {
			// Unreadable documents surface once, to the filling caller,
			// so they can be reported; the cached empty entry answers
			// silently for the rest of the window.
			fillErr = cdsco.Errorf(cdsco.EUNREADABLE, "no extractable text in %s", ref.URL)
		}
	}

	// An aborted caller is not a property of the document; leave the
	// entry unfilled so the next search retries.
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	entry := &cdsco.CacheEntry{
		Key:         ref.ID,
		Text:        text,
		ContentHash: hashContent(text),
		FetchedAt:   c.now(),
	}
	if err := c.store.Put(ctx, entry); err != nil && fillErr == nil {
		// A store failure degrades to an uncached fill; the text is
		// still correct.
		return text, nil
	}

	return text, fillErr
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}
