// Package fs provides a file-based cache store. Each entry is a plain
// text file with a small frontmatter header, so a cache directory can
// be inspected (and pruned) with ordinary shell tools.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	cdsco "github.com/Mainak-dev/cdsco-deepseek"
)

// Ensure CacheStore implements cdsco.CacheStore at compile time.
var _ cdsco.CacheStore = (*CacheStore)(nil)

// CacheStore stores one cache entry per file under a base directory.
type CacheStore struct {
	baseDir string
}

// NewCacheStore creates a new CacheStore rooted at baseDir. The
// directory is created on first Put.
func NewCacheStore(baseDir string) *CacheStore {
	return &CacheStore{baseDir: baseDir}
}

// path derives the entry file name from the key. Keys are URLs or
// endpoint ids, so they are hashed rather than sanitized.
func (s *CacheStore) path(key string) string {
	name := fmt.Sprintf("%016x.txt", xxhash.Sum64String(key))
	return filepath.Join(s.baseDir, name)
}

// Get returns the stored entry for key, or ENOTFOUND.
func (s *CacheStore) Get(ctx context.Context, key string) (*cdsco.CacheEntry, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, cdsco.Errorf(cdsco.ENOTFOUND, "no cache entry for %q", key)
	} else if err != nil {
		return nil, cdsco.Errorf(cdsco.EINTERNAL, "read cache entry: %v", err)
	}

	entry, err := parseEntry(data)
	if err != nil {
		return nil, err
	}
	// A hash collision between distinct keys maps them to the same
	// file; treat the mismatch as a miss.
	if entry.Key != key {
		return nil, cdsco.Errorf(cdsco.ENOTFOUND, "no cache entry for %q", key)
	}
	return entry, nil
}

// Put stores the entry, replacing any previous one for the same key.
// The write is atomic: a temp file is renamed into place.
func (s *CacheStore) Put(ctx context.Context, entry *cdsco.CacheEntry) error {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return cdsco.Errorf(cdsco.EINTERNAL, "create cache dir: %v", err)
	}

	final := s.path(entry.Key)
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, []byte(formatEntry(entry)), 0644); err != nil {
		return cdsco.Errorf(cdsco.EINTERNAL, "write cache entry: %v", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		return cdsco.Errorf(cdsco.EINTERNAL, "commit cache entry: %v", err)
	}
	return nil
}

// DeleteExpired removes all entries fetched before the cutoff.
func (s *CacheStore) DeleteExpired(ctx context.Context, cutoff time.Time) error {
	names, err := filepath.Glob(filepath.Join(s.baseDir, "*.txt"))
	if err != nil {
		return cdsco.Errorf(cdsco.EINTERNAL, "list cache entries: %v", err)
	}
	for _, name := range names {
		data, err := os.ReadFile(name)
		if err != nil {
			continue
		}
		entry, err := parseEntry(data)
		if err != nil {
			continue
		}
		if entry.FetchedAt.Before(cutoff) {
			if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
				return cdsco.Errorf(cdsco.EINTERNAL, "delete cache entry: %v", err)
			}
		}
	}
	return nil
}

// formatEntry renders an entry with frontmatter followed by the text.
func formatEntry(entry *cdsco.CacheEntry) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("key: ")
	b.WriteString(entry.Key)
	b.WriteString("\nhash: ")
	b.WriteString(entry.ContentHash)
	b.WriteString("\nfetched: ")
	b.WriteString(entry.FetchedAt.UTC().Format(time.RFC3339Nano))
	b.WriteString("\n---\n")
	b.WriteString(entry.Text)
	return b.String()
}

// parseEntry is the inverse of formatEntry.
func parseEntry(data []byte) (*cdsco.CacheEntry, error) {
	const opened = "---\n"
	content := string(data)
	if !strings.HasPrefix(content, opened) {
		return nil, cdsco.Errorf(cdsco.EINTERNAL, "malformed cache entry")
	}
	rest := content[len(opened):]
	end := strings.Index(rest, "\n---\n")
	if end < 0 {
		return nil, cdsco.Errorf(cdsco.EINTERNAL, "malformed cache entry")
	}

	entry := &cdsco.CacheEntry{Text: rest[end+len("\n---\n"):]}
	for _, line := range strings.Split(rest[:end], "\n") {
		field, value, ok := strings.Cut(line, ": ")
		if !ok {
			// A field with an empty value has no trailing space.
			field, value, ok = strings.Cut(line, ":")
			if !ok {
				continue
			}
		}
		switch field {
		case "key":
			entry.Key = value
		case "hash":
			entry.ContentHash = value
		case "fetched":
			t, err := time.Parse(time.RFC3339Nano, value)
			if err != nil {
				return nil, cdsco.Errorf(cdsco.EINTERNAL, "malformed cache timestamp: %v", err)
			}
			entry.FetchedAt = t
		}
	}
	return entry, nil
}
