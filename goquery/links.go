// Package goquery provides HTML link extraction on top of
// github.com/PuerkitoBio/goquery. It is purely computational: callers
// supply the HTML and a base URL, fetching is someone else's job.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	cdsco "github.com/Mainak-dev/cdsco-deepseek"
)

// DefaultPaginationSelector matches the "page N" links inside the
// pagination container used by the CDSCO listing pages.
const DefaultPaginationSelector = "ul.pagination a[href]"

// ExtractDocumentLinks parses HTML and returns the document references
// found among its anchors, classified by the given policies in order.
// Relative hrefs are resolved against baseURL. Anchors no policy claims
// are ignored. The returned references are in document order and may
// contain duplicates; deduplication is the caller's concern because it
// spans multiple pages.
func ExtractDocumentLinks(html, baseURL string, policies []cdsco.LinkPolicy) ([]cdsco.DocumentRef, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, cdsco.Errorf(cdsco.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, cdsco.Errorf(cdsco.EINVALID, "failed to parse HTML: %v", err)
	}

	var refs []cdsco.DocumentRef
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" || isNonHTTPLink(href) {
			return
		}

		for _, policy := range policies {
			if ref, ok := policy.Classify(base, href, sel.Text()); ok {
				refs = append(refs, ref)
				return
			}
		}
	})

	return refs, nil
}

// ExtractPaginationLinks parses HTML and returns the absolute URLs of
// pagination targets matched by the CSS selector, deduplicated in
// document order. An empty selector falls back to
// DefaultPaginationSelector.
func ExtractPaginationLinks(html, baseURL, selector string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, cdsco.Errorf(cdsco.EINVALID, "invalid base URL: %v", err)
	}
	if selector == "" {
		selector = DefaultPaginationSelector
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, cdsco.Errorf(cdsco.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var pages []string
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		pages = append(pages, resolved)
	})

	return pages, nil
}

// resolveURL resolves a relative URL against a base URL. Returns empty
// string if the href cannot be parsed or if the resolved URL is
// self-referential (same as base URL after stripping fragment).
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
