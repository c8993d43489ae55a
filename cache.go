package cdsco

import (
	"context"
	"time"
)

// DefaultCacheTTL is the default validity window for cached text.
const DefaultCacheTTL = 24 * time.Hour

// CacheEntry is the memoized outcome of fetching and extracting one
// document. An entry exists for every attempted document, including
// ones that failed to fetch or parse (Text is empty in that case), so
// a transient failure is not retried until the entry expires.
type CacheEntry struct {
	// Key is the DocumentRef.ID the entry belongs to.
	Key string

	// Text is the extracted plain text. Empty when the document was
	// unreadable or its fetch failed.
	Text string

	// ContentHash is the xxHash of Text in hex, for change detection
	// across refreshes.
	ContentHash string

	// FetchedAt is when the fetch/extract was performed.
	FetchedAt time.Time
}

// Expired reports whether the entry is stale at the given time for the
// given validity window.
func (e *CacheEntry) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.FetchedAt) > ttl
}

// TextCache memoizes document text by DocumentRef.ID.
type TextCache interface {
	// GetText returns the extracted text for the document. A valid
	// cached entry is returned without network I/O. Otherwise the
	// document is fetched and extracted, the outcome is stored (an
	// empty string on failure, with the same expiry), and the text is
	// returned. The error is non-nil only for the call that performed
	// a failing fill; later hits on the failure entry return ("", nil).
	GetText(ctx context.Context, ref DocumentRef) (string, error)
}

// CacheStore persists cache entries. Implementations must be safe for
// concurrent use; each key's entry is independently read and written.
type CacheStore interface {
	// Get returns the entry for key, or ENOTFOUND if absent.
	Get(ctx context.Context, key string) (*CacheEntry, error)

	// Put inserts or replaces the entry for entry.Key.
	Put(ctx context.Context, entry *CacheEntry) error

	// DeleteExpired removes entries fetched before the cutoff.
	DeleteExpired(ctx context.Context, cutoff time.Time) error
}
