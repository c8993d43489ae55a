package cdsco

import "context"

// Fetcher retrieves raw bytes from URLs over the network.
// Implementations identify themselves with a client header and bound
// every request with a timeout.
type Fetcher interface {
	// Fetch performs a single GET request and returns the response
	// body. Connection failures, timeouts, and non-2xx statuses are
	// reported as ETRANSPORT errors. No retries are attempted; the
	// caller decides whether to skip or abort.
	Fetch(ctx context.Context, url string) ([]byte, error)

	// Close releases any resources held by the fetcher.
	Close() error
}
