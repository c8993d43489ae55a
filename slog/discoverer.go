package slog

import (
	"context"
	"log/slog"
	"time"

	cdsco "github.com/Mainak-dev/cdsco-deepseek"
)

// Ensure LoggingDiscoverer implements cdsco.Discoverer.
var _ cdsco.Discoverer = (*LoggingDiscoverer)(nil)

// LoggingDiscoverer wraps a Discoverer with per-run logging.
type LoggingDiscoverer struct {
	next   cdsco.Discoverer
	logger *slog.Logger
}

// NewLoggingDiscoverer creates a new LoggingDiscoverer.
func NewLoggingDiscoverer(next cdsco.Discoverer, logger *slog.Logger) *LoggingDiscoverer {
	return &LoggingDiscoverer{next: next, logger: logger}
}

// Discover delegates to the wrapped discoverer and logs the outcome.
func (d *LoggingDiscoverer) Discover(ctx context.Context, listingURLs []string) (discovery *cdsco.Discovery, err error) {
	defer func(begin time.Time) {
		documents, skipped := 0, 0
		if discovery != nil {
			documents = len(discovery.Documents)
			skipped = len(discovery.Skipped)
		}
		d.logger.Info("document discovery",
			"listings", len(listingURLs),
			"documents", documents,
			"skipped", skipped,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Discover(ctx, listingURLs)
}
