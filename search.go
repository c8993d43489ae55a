package cdsco

// Snippet extraction defaults, matching the bounds the search results
// were designed around: up to 30 characters of context on each side of
// a match, at most 5 snippets per document.
const (
	DefaultSnippetWindow = 30
	DefaultMaxSnippets   = 5
)

// SearchResult reports the keyword occurrences found in one document.
// Results are created once per matching document and never mutated.
type SearchResult struct {
	// Document is the matched document.
	Document DocumentRef `json:"document"`

	// Count is the total number of non-overlapping case-insensitive
	// occurrences of the keyword. Always >= 1.
	Count int `json:"count"`

	// Snippets holds up to DefaultMaxSnippets context windows around
	// the first occurrences, in text order.
	Snippets []string `json:"snippets"`
}

// FailedDocument records a document whose fetch or extraction failed
// during a search. Failures degrade to "no result", never abort the batch.
type FailedDocument struct {
	Document DocumentRef
	Err      error
}

// SearchReport is the full outcome of one keyword search.
type SearchReport struct {
	// Results are ranked by descending Count; ties preserve the
	// relative input order of the documents.
	Results []SearchResult

	// Scanned is the pre-filter number of documents processed.
	Scanned int

	// Failed lists documents that could not be fetched or parsed.
	Failed []FailedDocument
}

// SearchProgress reports progress after each document is processed.
type SearchProgress struct {
	// Index is the 1-based position of the document just processed.
	Index int

	// Total is the number of documents in the search.
	Total int

	// Document is the document just processed.
	Document DocumentRef
}

// SearchProgressFunc is called as documents are processed. It is a
// side channel for presentation layers and has no effect on results.
type SearchProgressFunc func(SearchProgress)
