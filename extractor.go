package cdsco

import "context"

// TextExtractor converts a binary document payload into plain text.
type TextExtractor interface {
	// Extract parses the payload as a sequence of pages and returns
	// their text concatenated in page order. A page with no
	// extractable text (e.g. a scanned image) contributes an empty
	// segment. A payload that cannot be parsed as a document at all
	// yields ("", nil): unreadable is a property of the document, not
	// a failure of the pipeline. Errors are reserved for environment
	// problems such as scratch-space I/O.
	Extract(ctx context.Context, data []byte) (string, error)
}
