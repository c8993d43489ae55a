package search_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cdsco "github.com/Mainak-dev/cdsco-deepseek"
	"github.com/Mainak-dev/cdsco-deepseek/mock"
	"github.com/Mainak-dev/cdsco-deepseek/search"
)

func doc(id string) cdsco.DocumentRef {
	return cdsco.DocumentRef{ID: id, URL: "https://example.com/" + id + ".pdf"}
}

// textCache returns a cache backed by a fixed id->text map.
func textCache(texts map[string]string) *mock.TextCache {
	return &mock.TextCache{
		GetTextFn: func(_ context.Context, ref cdsco.DocumentRef) (string, error) {
			return texts[ref.ID], nil
		},
	}
}

func TestEngine_Search(t *testing.T) {
	t.Run("RanksByCountDescending", func(t *testing.T) {
		engine := &search.Engine{Cache: textCache(map[string]string{
			"a": "drug",
			"b": "drug drug drug",
			"c": "drug drug",
		})}

		report, err := engine.Search(context.Background(), []cdsco.DocumentRef{doc("a"), doc("b"), doc("c")}, "drug", search.Options{})
		require.NoError(t, err)

		require.Len(t, report.Results, 3)
		assert.Equal(t, "b", report.Results[0].Document.ID)
		assert.Equal(t, 3, report.Results[0].Count)
		assert.Equal(t, "c", report.Results[1].Document.ID)
		assert.Equal(t, "a", report.Results[2].Document.ID)
		assert.Equal(t, 3, report.Scanned)
	})

	t.Run("TiesPreserveInputOrder", func(t *testing.T) {
		engine := &search.Engine{Cache: textCache(map[string]string{
			"first":  "vaccine vaccine",
			"second": "vaccine vaccine",
			"third":  "vaccine vaccine vaccine",
		})}

		report, err := engine.Search(context.Background(), []cdsco.DocumentRef{doc("first"), doc("second"), doc("third")}, "vaccine", search.Options{})
		require.NoError(t, err)

		require.Len(t, report.Results, 3)
		assert.Equal(t, "third", report.Results[0].Document.ID)
		assert.Equal(t, "first", report.Results[1].Document.ID)
		assert.Equal(t, "second", report.Results[2].Document.ID)
	})

	t.Run("MinCountFiltersAfterRanking", func(t *testing.T) {
		engine := &search.Engine{Cache: textCache(map[string]string{
			"a": "recall",
			"b": "recall recall recall recall",
			"c": "recall recall",
		})}

		report, err := engine.Search(context.Background(), []cdsco.DocumentRef{doc("a"), doc("b"), doc("c")}, "recall", search.Options{MinCount: 2})
		require.NoError(t, err)

		require.Len(t, report.Results, 2)
		assert.Equal(t, "b", report.Results[0].Document.ID)
		assert.Equal(t, 4, report.Results[0].Count)
		assert.Equal(t, "c", report.Results[1].Document.ID)
		assert.Equal(t, 2, report.Results[1].Count)
		assert.Equal(t, 3, report.Scanned)
	})

	t.Run("CaseInsensitiveMatching", func(t *testing.T) {
		engine := &search.Engine{Cache: textCache(map[string]string{
			"a": "Paracetamol PARACETAMOL paracetamol",
		})}

		report, err := engine.Search(context.Background(), []cdsco.DocumentRef{doc("a")}, "Paracetamol", search.Options{})
		require.NoError(t, err)

		require.Len(t, report.Results, 1)
		assert.Equal(t, 3, report.Results[0].Count)
	})

	t.Run("SnippetsSurroundMatches", func(t *testing.T) {
		engine := &search.Engine{Cache: textCache(map[string]string{
			"a": strings.Repeat("x", 40) + " approval granted " + strings.Repeat("y", 40),
		})}

		report, err := engine.Search(context.Background(), []cdsco.DocumentRef{doc("a")}, "approval", search.Options{})
		require.NoError(t, err)

		require.Len(t, report.Results, 1)
		require.Len(t, report.Results[0].Snippets, 1)
		assert.Contains(t, report.Results[0].Snippets[0], "approval granted")
	})

	t.Run("EmptyKeyword", func(t *testing.T) {
		engine := &search.Engine{Cache: textCache(nil)}

		_, err := engine.Search(context.Background(), []cdsco.DocumentRef{doc("a")}, "   ", search.Options{})
		assert.Equal(t, cdsco.EINVALID, cdsco.ErrorCode(err))
	})

	t.Run("NoDocuments", func(t *testing.T) {
		engine := &search.Engine{Cache: textCache(nil)}

		report, err := engine.Search(context.Background(), nil, "drug", search.Options{})
		require.NoError(t, err)
		assert.Empty(t, report.Results)
		assert.Zero(t, report.Scanned)
	})

	t.Run("FailedDocumentDoesNotAbortBatch", func(t *testing.T) {
		cache := &mock.TextCache{
			GetTextFn: func(_ context.Context, ref cdsco.DocumentRef) (string, error) {
				if ref.ID == "bad" {
					return "", cdsco.Errorf(cdsco.ETRANSPORT, "connection reset")
				}
				return "drug drug", nil
			},
		}
		engine := &search.Engine{Cache: cache}

		report, err := engine.Search(context.Background(), []cdsco.DocumentRef{doc("good"), doc("bad"), doc("also-good")}, "drug", search.Options{})
		require.NoError(t, err)

		assert.Len(t, report.Results, 2)
		require.Len(t, report.Failed, 1)
		assert.Equal(t, "bad", report.Failed[0].Document.ID)
		assert.Equal(t, cdsco.ETRANSPORT, cdsco.ErrorCode(report.Failed[0].Err))
		assert.Equal(t, 3, report.Scanned)
	})

	t.Run("EmptyTextSkipped", func(t *testing.T) {
		engine := &search.Engine{Cache: textCache(map[string]string{
			"readable":   "notice issued",
			"unreadable": "",
		})}

		report, err := engine.Search(context.Background(), []cdsco.DocumentRef{doc("unreadable"), doc("readable")}, "notice", search.Options{})
		require.NoError(t, err)

		require.Len(t, report.Results, 1)
		assert.Equal(t, "readable", report.Results[0].Document.ID)
		assert.Empty(t, report.Failed)
		assert.Equal(t, 2, report.Scanned)
	})

	t.Run("ZeroCountDocumentsOmitted", func(t *testing.T) {
		engine := &search.Engine{Cache: textCache(map[string]string{
			"hit":  "insulin supply",
			"miss": "unrelated circular",
		})}

		report, err := engine.Search(context.Background(), []cdsco.DocumentRef{doc("hit"), doc("miss")}, "insulin", search.Options{})
		require.NoError(t, err)

		require.Len(t, report.Results, 1)
		assert.Equal(t, "hit", report.Results[0].Document.ID)
	})

	t.Run("ProgressReportsEveryDocument", func(t *testing.T) {
		engine := &search.Engine{Cache: textCache(map[string]string{"a": "x", "b": "x"})}

		var events []cdsco.SearchProgress
		opts := search.Options{Progress: func(p cdsco.SearchProgress) {
			events = append(events, p)
		}}

		_, err := engine.Search(context.Background(), []cdsco.DocumentRef{doc("a"), doc("b")}, "x", opts)
		require.NoError(t, err)

		require.Len(t, events, 2)
		assert.Equal(t, 1, events[0].Index)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, "a", events[0].Document.ID)
		assert.Equal(t, 2, events[1].Index)
		assert.Equal(t, "b", events[1].Document.ID)
	})

	t.Run("CancellationDiscardsPartialResults", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cache := &mock.TextCache{
			GetTextFn: func(_ context.Context, ref cdsco.DocumentRef) (string, error) {
				if ref.ID == "b" {
					cancel()
				}
				return "drug", nil
			},
		}
		engine := &search.Engine{Cache: cache}

		report, err := engine.Search(ctx, []cdsco.DocumentRef{doc("a"), doc("b"), doc("c")}, "drug", search.Options{})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, report)
	})

	t.Run("KeepPartialReturnsResultsOnCancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cache := &mock.TextCache{
			GetTextFn: func(_ context.Context, ref cdsco.DocumentRef) (string, error) {
				if ref.ID == "b" {
					cancel()
				}
				return "drug", nil
			},
		}
		engine := &search.Engine{Cache: cache}

		report, err := engine.Search(ctx, []cdsco.DocumentRef{doc("a"), doc("b"), doc("c")}, "drug", search.Options{KeepPartial: true})
		assert.ErrorIs(t, err, context.Canceled)
		require.NotNil(t, report)
		assert.Len(t, report.Results, 2)
		assert.Equal(t, 2, report.Scanned)
	})

	t.Run("ConcurrentMatchesSequentialRanking", func(t *testing.T) {
		texts := map[string]string{
			"a": "drug",
			"b": "drug drug drug",
			"c": "drug drug",
			"d": "drug drug",
			"e": "",
		}
		var mu sync.Mutex
		inFlight, maxInFlight := 0, 0
		cache := &mock.TextCache{
			GetTextFn: func(_ context.Context, ref cdsco.DocumentRef) (string, error) {
				mu.Lock()
				inFlight++
				if inFlight > maxInFlight {
					maxInFlight = inFlight
				}
				mu.Unlock()
				time.Sleep(5 * time.Millisecond)
				mu.Lock()
				inFlight--
				mu.Unlock()
				return texts[ref.ID], nil
			},
		}
		engine := &search.Engine{Cache: cache, Concurrency: 3}

		docs := []cdsco.DocumentRef{doc("a"), doc("b"), doc("c"), doc("d"), doc("e")}
		report, err := engine.Search(context.Background(), docs, "drug", search.Options{})
		require.NoError(t, err)

		require.Len(t, report.Results, 4)
		assert.Equal(t, "b", report.Results[0].Document.ID)
		assert.Equal(t, "c", report.Results[1].Document.ID)
		assert.Equal(t, "d", report.Results[2].Document.ID)
		assert.Equal(t, "a", report.Results[3].Document.ID)
		assert.Equal(t, 5, report.Scanned)
		assert.LessOrEqual(t, maxInFlight, 3)
	})

	t.Run("LimiterPacesDocuments", func(t *testing.T) {
		engine := &search.Engine{
			Cache:   textCache(map[string]string{"a": "x", "b": "x", "c": "x"}),
			Limiter: search.NewLimiter(20 * time.Millisecond),
		}

		start := time.Now()
		_, err := engine.Search(context.Background(), []cdsco.DocumentRef{doc("a"), doc("b"), doc("c")}, "x", search.Options{})
		require.NoError(t, err)

		// First token is immediate; the remaining two wait.
		assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
	})
}

func TestNewLimiter(t *testing.T) {
	assert.Nil(t, search.NewLimiter(0))
	assert.Nil(t, search.NewLimiter(-time.Second))
	assert.NotNil(t, search.NewLimiter(time.Millisecond))
}
