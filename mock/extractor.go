package mock

import (
	"context"

	cdsco "github.com/Mainak-dev/cdsco-deepseek"
)

var _ cdsco.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of cdsco.TextExtractor.
type TextExtractor struct {
	ExtractFn func(ctx context.Context, data []byte) (string, error)
}

func (e *TextExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	return e.ExtractFn(ctx, data)
}
