package cdsco

import (
	"context"
	"net/url"
	"strings"
)

// DocumentRef identifies a downloadable document found on a listing page.
type DocumentRef struct {
	// ID uniquely identifies the document within a discovery run.
	// For direct links it is the resolved absolute URL; for indirect
	// download-endpoint links it is the endpoint's identifier parameter.
	ID string `json:"id"`

	// URL is the absolute URL the document can be fetched from.
	URL string `json:"url"`

	// Title is the visible text of the link that referenced the
	// document. May be empty for direct links.
	Title string `json:"title,omitempty"`
}

// Validate returns an error if the reference contains invalid fields.
func (d *DocumentRef) Validate() error {
	if d.ID == "" {
		return Errorf(EINVALID, "document ID required")
	}
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	return nil
}

// Label returns a short human-readable name for the document: the title
// if one was captured, otherwise the final path segment of the URL.
func (d *DocumentRef) Label() string {
	if d.Title != "" {
		return d.Title
	}
	if idx := strings.LastIndex(d.URL, "/"); idx != -1 && idx < len(d.URL)-1 {
		return d.URL[idx+1:]
	}
	return d.URL
}

// LinkPolicy classifies an anchor on a listing page as a document
// reference. The base URL is the listing page the anchor was found on
// and is used to resolve relative hrefs.
type LinkPolicy interface {
	// Classify returns the document reference for the anchor and true,
	// or the zero value and false when the anchor is not a document
	// link under this policy.
	Classify(base *url.URL, href, text string) (DocumentRef, bool)
}

// DirectPolicy matches anchors whose path ends in a file extension,
// e.g. ".pdf". The resolved absolute URL doubles as the document ID.
type DirectPolicy struct {
	// Extension is the file extension to match, including the leading
	// dot. Matching is case-insensitive.
	Extension string
}

var _ LinkPolicy = (*DirectPolicy)(nil)

// Classify implements LinkPolicy.
func (p *DirectPolicy) Classify(base *url.URL, href, text string) (DocumentRef, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return DocumentRef{}, false
	}
	resolved := base.ResolveReference(ref)
	if !strings.HasSuffix(strings.ToLower(resolved.Path), strings.ToLower(p.Extension)) {
		return DocumentRef{}, false
	}
	resolved.Fragment = ""
	abs := resolved.String()
	return DocumentRef{
		ID:    abs,
		URL:   abs,
		Title: strings.TrimSpace(text),
	}, true
}

// IndirectPolicy matches anchors that point at a download endpoint
// carrying a document identifier as a query parameter, e.g.
// common_download.jsp?num_id_pk=123. The canonical download URL is
// synthesized from the Endpoint template so that documents reached via
// different listing pages share one identity.
type IndirectPolicy struct {
	// Marker is the substring that identifies a download-endpoint href.
	Marker string

	// IDParam is the name of the query parameter carrying the
	// document identifier.
	IDParam string

	// Endpoint is the absolute URL of the download endpoint used to
	// synthesize the canonical document URL.
	Endpoint string
}

var _ LinkPolicy = (*IndirectPolicy)(nil)

// Classify implements LinkPolicy. Anchors with a malformed or missing
// identifier parameter are skipped rather than reported as errors.
func (p *IndirectPolicy) Classify(base *url.URL, href, text string) (DocumentRef, bool) {
	if !strings.Contains(href, p.Marker) {
		return DocumentRef{}, false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return DocumentRef{}, false
	}
	id := ref.Query().Get(p.IDParam)
	if id == "" {
		return DocumentRef{}, false
	}
	return DocumentRef{
		ID:    id,
		URL:   p.Endpoint + "?" + p.IDParam + "=" + url.QueryEscape(id),
		Title: strings.TrimSpace(text),
	}, true
}

// SkippedPage records a listing page that could not be processed during
// discovery. Discovery continues with the remaining pages.
type SkippedPage struct {
	URL string
	Err error
}

// Discovery holds the outcome of a discovery run.
type Discovery struct {
	// Documents are the discovered references, deduplicated by ID
	// with the first-seen entry kept.
	Documents []DocumentRef

	// Skipped lists listing pages that failed to fetch or parse.
	Skipped []SkippedPage
}

// Discoverer finds document references on listing pages.
type Discoverer interface {
	// Discover fetches each listing URL, classifies its links, and
	// follows pagination one level deep. A failed listing page is
	// recorded in the result and skipped; only an empty listingURLs
	// argument is an error (EINVALID).
	Discover(ctx context.Context, listingURLs []string) (*Discovery, error)
}
