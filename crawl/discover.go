// Package crawl provides discovery of document references from
// paginated listing pages. It coordinates fetching, link
// classification, and pagination following.
package crawl

import (
	"context"
	"net/url"

	cdsco "github.com/Mainak-dev/cdsco-deepseek"
	cdscogoquery "github.com/Mainak-dev/cdsco-deepseek/goquery"
)

// Compile-time interface verification.
var _ cdsco.Discoverer = (*Discoverer)(nil)

// Discoverer finds document references on listing pages and, when
// FollowPagination is set, on the pages their pagination controls point
// to. Pagination is followed exactly one level deep: pagination targets
// are scanned for document links but not for further pagination, which
// bounds the traversal regardless of how the remote site links its pages.
type Discoverer struct {
	// Fetcher retrieves listing pages.
	Fetcher cdsco.Fetcher

	// Policies classify anchors into document references, tried in order.
	Policies []cdsco.LinkPolicy

	// FollowPagination enables scanning of pagination targets.
	FollowPagination bool

	// PaginationSelector is the CSS selector for pagination links.
	// Empty means goquery.DefaultPaginationSelector.
	PaginationSelector string

	// RateLimiter, if set, paces listing-page fetches per domain.
	RateLimiter cdsco.DomainLimiter
}

// Discover implements cdsco.Discoverer.
func (d *Discoverer) Discover(ctx context.Context, listingURLs []string) (*cdsco.Discovery, error) {
	if len(listingURLs) == 0 {
		return nil, cdsco.Errorf(cdsco.EINVALID, "at least one listing URL required")
	}
	if len(d.Policies) == 0 {
		return nil, cdsco.Errorf(cdsco.EINVALID, "at least one link policy required")
	}

	discovery := &cdsco.Discovery{}
	visited := make(map[string]bool)
	seen := make(map[string]bool) // document IDs, first seen wins

	// First pass: the configured listing pages, collecting pagination
	// targets as we go.
	var pagination []string
	for _, listingURL := range listingURLs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if visited[listingURL] {
			continue
		}
		visited[listingURL] = true

		pages := d.scanPage(ctx, listingURL, discovery, seen, d.FollowPagination)
		pagination = append(pagination, pages...)
	}

	// Second pass: pagination targets, one level deep only.
	for _, pageURL := range pagination {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if visited[pageURL] {
			continue
		}
		visited[pageURL] = true

		d.scanPage(ctx, pageURL, discovery, seen, false)
	}

	return discovery, nil
}

// scanPage fetches one listing page and appends its document references
// to the discovery, deduplicated by ID. A fetch or parse failure is
// recorded as a skipped page and discovery continues. The returned
// slice holds pagination targets when followPagination is set.
func (d *Discoverer) scanPage(ctx context.Context, pageURL string, discovery *cdsco.Discovery, seen map[string]bool, followPagination bool) []string {
	if d.RateLimiter != nil {
		if u, err := url.Parse(pageURL); err == nil {
			if err := d.RateLimiter.Wait(ctx, u.Host); err != nil {
				return nil
			}
		}
	}

	body, err := d.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		discovery.Skipped = append(discovery.Skipped, cdsco.SkippedPage{URL: pageURL, Err: err})
		return nil
	}
	html := string(body)

	refs, err := cdscogoquery.ExtractDocumentLinks(html, pageURL, d.Policies)
	if err != nil {
		discovery.Skipped = append(discovery.Skipped, cdsco.SkippedPage{URL: pageURL, Err: err})
		return nil
	}
	for _, ref := range refs {
		if seen[ref.ID] {
			continue
		}
		seen[ref.ID] = true
		discovery.Documents = append(discovery.Documents, ref)
	}

	if !followPagination {
		return nil
	}
	pages, err := cdscogoquery.ExtractPaginationLinks(html, pageURL, d.PaginationSelector)
	if err != nil {
		return nil
	}
	return pages
}
