package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/seenimoa/secanalyzer/pkg/models"
)

// Fetcher retrieves the primary document of a ticker's latest filing of a
// given form type.
type Fetcher interface {
	GetFilingHTML(ctx context.Context, ticker, form string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, ticker, form string) ([]byte, error)

// GetFilingHTML calls f.
func (f FetcherFunc) GetFilingHTML(ctx context.Context, ticker, form string) ([]byte, error) {
	return f(ctx, ticker, form)
}

// Options tunes a Pipeline.
type Options struct {
	// AnnotateComparative adds two-column change badges to the balance sheet
	// and cash flow tables as well.
	AnnotateComparative bool
	// Now overrides the clock used for LastUpdated.
	Now func() time.Time
}

// Pipeline turns a filing into an AnalysisResult.
type Pipeline struct {
	fetcher Fetcher
	opts    Options
}

// NewPipeline creates a pipeline reading filings through f.
func NewPipeline(f Fetcher, opts Options) *Pipeline {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Pipeline{fetcher: f, opts: opts}
}

// Run fetches the filing and analyzes it. Fetch errors are returned wrapped;
// missing tables or metadata are reported as nil fields, never as errors.
func (p *Pipeline) Run(ctx context.Context, ticker, reportType string) (*models.AnalysisResult, error) {
	logger := zerolog.Ctx(ctx).With().
		Str("run_id", uuid.NewString()).
		Str("ticker", ticker).
		Str("form", reportType).
		Logger()

	start := time.Now()
	raw, err := p.fetcher.GetFilingHTML(ctx, ticker, reportType)
	if err != nil {
		return nil, fmt.Errorf("fetching %s %s filing: %w", ticker, reportType, err)
	}
	logger.Debug().Int("bytes", len(raw)).Dur("fetch", time.Since(start)).Msg("filing fetched")

	result := p.Analyze(DecodeDocument(raw), ticker, reportType)
	logger.Debug().
		Int("statements", result.Tables.Found()).
		Bool("income", result.Tables.IncomeStatement != nil).
		Bool("balance", result.Tables.BalanceSheet != nil).
		Bool("cash_flow", result.Tables.CashFlow != nil).
		Dur("elapsed", time.Since(start)).
		Msg("filing analyzed")
	return result, nil
}

// Analyze runs extraction, annotation and metadata detection over an
// already fetched document.
func (p *Pipeline) Analyze(rawHTML, ticker, reportType string) *models.AnalysisResult {
	doc, err := ParseDocument(rawHTML)
	if err != nil {
		doc = nil
	}

	tables := ExtractStatementTables(doc)
	if tables.IncomeStatement != nil {
		tables.IncomeStatement = models.StringPtr(AnnotateIncome(*tables.IncomeStatement))
	}
	if p.opts.AnnotateComparative {
		if tables.BalanceSheet != nil {
			tables.BalanceSheet = models.StringPtr(AnnotateComparative(*tables.BalanceSheet))
		}
		if tables.CashFlow != nil {
			tables.CashFlow = models.StringPtr(AnnotateComparative(*tables.CashFlow))
		}
	}

	return &models.AnalysisResult{
		Meta:        extractMeta(doc, rawHTML, ticker, reportType),
		Tables:      tables,
		LastUpdated: p.opts.Now().UTC(),
	}
}

// DecodeDocument converts fetched bytes to text, dropping invalid UTF-8.
func DecodeDocument(raw []byte) string {
	return strings.ToValidUTF8(string(raw), "")
}
