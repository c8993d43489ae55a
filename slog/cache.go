package slog

import (
	"context"
	"log/slog"
	"time"

	cdsco "github.com/Mainak-dev/cdsco-deepseek"
)

// Ensure LoggingTextCache implements cdsco.TextCache.
var _ cdsco.TextCache = (*LoggingTextCache)(nil)

// LoggingTextCache wraps a TextCache with per-document logging.
type LoggingTextCache struct {
	next   cdsco.TextCache
	logger *slog.Logger
}

// NewLoggingTextCache creates a new LoggingTextCache.
func NewLoggingTextCache(next cdsco.TextCache, logger *slog.Logger) *LoggingTextCache {
	return &LoggingTextCache{next: next, logger: logger}
}

// GetText delegates to the wrapped cache and logs the operation.
func (c *LoggingTextCache) GetText(ctx context.Context, doc cdsco.DocumentRef) (text string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("document text",
			"document", doc.ID,
			"chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.GetText(ctx, doc)
}
