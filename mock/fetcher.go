// Package mock provides mock implementations of cdsco interfaces for testing.
package mock

import (
	"context"

	cdsco "github.com/Mainak-dev/cdsco-deepseek"
)

var _ cdsco.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of cdsco.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) ([]byte, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
