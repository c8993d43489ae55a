package mock

import (
	"context"

	cdsco "github.com/Mainak-dev/cdsco-deepseek"
)

var _ cdsco.Discoverer = (*Discoverer)(nil)

// Discoverer is a mock implementation of cdsco.Discoverer.
type Discoverer struct {
	DiscoverFn func(ctx context.Context, listingURLs []string) (*cdsco.Discovery, error)
}

func (d *Discoverer) Discover(ctx context.Context, listingURLs []string) (*cdsco.Discovery, error) {
	return d.DiscoverFn(ctx, listingURLs)
}

var _ cdsco.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of cdsco.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.WaitFn == nil {
		return nil
	}
	return d.WaitFn(ctx, domain)
}
