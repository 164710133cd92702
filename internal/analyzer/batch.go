package analyzer

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/secanalyzer/pkg/models"
)

// BatchOutcome is the result of one ticker in a batch run.
type BatchOutcome struct {
	Ticker string
	Result *models.AnalysisResult
	Err    error
}

// RunBatch analyzes several tickers concurrently with at most concurrency
// runs in flight. A failing ticker does not stop the others; outcomes keep
// the order of tickers.
func RunBatch(ctx context.Context, run func(ctx context.Context, ticker string) (*models.AnalysisResult, error), tickers []string, concurrency int) []BatchOutcome {
	outcomes := make([]BatchOutcome, len(tickers))
	if concurrency < 1 {
		concurrency = 1
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, ticker := range tickers {
		g.Go(func() error {
			res, err := run(gctx, ticker)
			mu.Lock()
			outcomes[i] = BatchOutcome{Ticker: ticker, Result: res, Err: err}
			mu.Unlock()
			return nil // per-ticker errors are non-fatal
		})
	}
	_ = g.Wait()
	return outcomes
}
