// Package search implements keyword search across discovered documents.
// It coordinates cached text retrieval, occurrence counting, snippet
// extraction, and result ranking.
package search

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	cdsco "github.com/Mainak-dev/cdsco-deepseek"
)

// DefaultDelay is the default inter-document pause. The pause is a
// courtesy to the remote server and has no effect on result content.
const DefaultDelay = 500 * time.Millisecond

// NewLimiter returns a rate limiter equivalent to pausing delay
// between documents, usable for both serial and concurrent searches.
func NewLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

// Engine runs keyword searches over document lists.
type Engine struct {
	// Cache supplies document text, memoized across searches.
	Cache cdsco.TextCache

	// Limiter paces document processing. Nil disables pacing. The
	// limiter is global, so a concurrent search issues requests no
	// faster than a serial one.
	Limiter *rate.Limiter

	// Concurrency bounds parallel fetch+extract. Values <= 1 process
	// documents sequentially in input order.
	Concurrency int

	// SnippetWindow is the context on each side of a match, in
	// characters. Zero means cdsco.DefaultSnippetWindow.
	SnippetWindow int

	// MaxSnippets bounds the snippets per result. Zero means
	// cdsco.DefaultMaxSnippets.
	MaxSnippets int
}

// Options configures a single search invocation.
type Options struct {
	// MinCount drops results with fewer occurrences. The filter is
	// applied after ranking; surviving results report their true
	// totals. Values <= 1 keep everything.
	MinCount int

	// KeepPartial returns the results accumulated before a
	// cancellation together with the context error. By default a
	// canceled search discards partial results.
	KeepPartial bool

	// Progress, if set, is called after each document is processed.
	Progress cdsco.SearchProgressFunc
}

// outcome is the per-document result slot. Exactly one field is set
// for documents that matched or failed; both are nil for skips.
type outcome struct {
	result *cdsco.SearchResult
	failed *cdsco.FailedDocument
}

// Search scans the documents for the keyword, in input order, and
// returns results ranked by descending occurrence count with ties
// preserving input order. A document whose fetch or extraction fails
// is recorded in the report and never aborts the batch.
//
// Cancellation takes effect between documents. Unless
// Options.KeepPartial is set, a canceled search returns (nil, ctx.Err()).
func (e *Engine) Search(ctx context.Context, docs []cdsco.DocumentRef, keyword string, opts Options) (*cdsco.SearchReport, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, cdsco.Errorf(cdsco.EINVALID, "search keyword required")
	}

	outcomes := make([]outcome, len(docs))

	var processed int
	var err error
	if e.Concurrency > 1 {
		processed, err = e.runConcurrent(ctx, docs, keyword, opts, outcomes)
	} else {
		processed, err = e.runSequential(ctx, docs, keyword, opts, outcomes)
	}
	if err != nil && !opts.KeepPartial {
		return nil, err
	}

	report := &cdsco.SearchReport{Scanned: processed}
	for _, o := range outcomes {
		if o.result != nil {
			report.Results = append(report.Results, *o.result)
		}
		if o.failed != nil {
			report.Failed = append(report.Failed, *o.failed)
		}
	}

	// Rank by count descending; the stable sort preserves input order
	// among equal counts.
	sort.SliceStable(report.Results, func(i, j int) bool {
		return report.Results[i].Count > report.Results[j].Count
	})

	// The threshold filters after ranking so surviving results report
	// true totals.
	if opts.MinCount > 1 {
		filtered := report.Results[:0]
		for _, r := range report.Results {
			if r.Count >= opts.MinCount {
				filtered = append(filtered, r)
			}
		}
		report.Results = filtered
	}

	return report, err
}

// runSequential processes documents one at a time, in input order.
// It returns the number of documents processed.
func (e *Engine) runSequential(ctx context.Context, docs []cdsco.DocumentRef, keyword string, opts Options, outcomes []outcome) (int, error) {
	for i := range docs {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if e.Limiter != nil {
			if err := e.Limiter.Wait(ctx); err != nil {
				return i, err
			}
		}

		outcomes[i] = e.processDocument(ctx, docs[i], keyword)

		if opts.Progress != nil {
			opts.Progress(cdsco.SearchProgress{Index: i + 1, Total: len(docs), Document: docs[i]})
		}
	}
	return len(docs), nil
}

// runConcurrent processes documents with a bounded worker pool. Each
// document writes to its own outcome slot, so the final ranking is
// identical to a sequential run. Progress reports completion order.
func (e *Engine) runConcurrent(ctx context.Context, docs []cdsco.DocumentRef, keyword string, opts Options, outcomes []outcome) (int, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.Concurrency)

	var completed atomic.Int64
	var progressMu sync.Mutex

	for i := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if e.Limiter != nil {
				if err := e.Limiter.Wait(gctx); err != nil {
					return err
				}
			}

			outcomes[i] = e.processDocument(gctx, docs[i], keyword)

			done := int(completed.Add(1))
			if opts.Progress != nil {
				progressMu.Lock()
				opts.Progress(cdsco.SearchProgress{Index: done, Total: len(docs), Document: docs[i]})
				progressMu.Unlock()
			}
			return nil
		})
	}

	err := g.Wait()
	return int(completed.Load()), err
}

// processDocument fetches one document's text and scans it. Failures
// degrade to a recorded FailedDocument; empty text is a silent skip.
func (e *Engine) processDocument(ctx context.Context, doc cdsco.DocumentRef, keyword string) outcome {
	text, err := e.Cache.GetText(ctx, doc)
	if err != nil {
		return outcome{failed: &cdsco.FailedDocument{Document: doc, Err: err}}
	}
	if text == "" {
		return outcome{}
	}

	count := cdsco.CountOccurrences(text, keyword)
	if count == 0 {
		return outcome{}
	}

	window := e.SnippetWindow
	if window <= 0 {
		window = cdsco.DefaultSnippetWindow
	}
	maxSnippets := e.MaxSnippets
	if maxSnippets <= 0 {
		maxSnippets = cdsco.DefaultMaxSnippets
	}

	return outcome{result: &cdsco.SearchResult{
		Document: doc,
		Count:    count,
		Snippets: cdsco.ExtractSnippets(text, keyword, window, maxSnippets),
	}}
}
