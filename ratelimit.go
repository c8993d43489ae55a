package cdsco

import "context"

// DomainLimiter rate-limits outbound requests per remote domain. It is
// a politeness mechanism toward the remote server and must not affect
// result content.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled before the wait
	// completes.
	Wait(ctx context.Context, domain string) error
}
