// Package service wraps the analysis pipeline with input normalization,
// metrics and best-effort persistence. The CLI and the API both go through it.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/seenimoa/secanalyzer/internal/analyzer"
	"github.com/seenimoa/secanalyzer/internal/config"
	"github.com/seenimoa/secanalyzer/internal/metrics"
	"github.com/seenimoa/secanalyzer/internal/store"
	"github.com/seenimoa/secanalyzer/pkg/models"
	"github.com/seenimoa/secanalyzer/pkg/utils"
)

// DefaultForm is used when neither the caller nor the config names a form.
const DefaultForm = "10-Q"

const defaultPersistTimeout = 10 * time.Second

// ErrMissingTicker is returned when the ticker is empty after normalization.
var ErrMissingTicker = errors.New("ticker is required")

// Service runs analyses and stores their results.
type Service struct {
	pipeline       *analyzer.Pipeline
	store          store.Store
	defaultForm    string
	concurrency    int
	persistTimeout time.Duration
}

// New creates a service. A nil store disables persistence.
func New(p *analyzer.Pipeline, s store.Store, cfg config.AnalysisConfig) *Service {
	if s == nil {
		s = store.Disabled{}
	}
	svc := &Service{
		pipeline:       p,
		store:          s,
		defaultForm:    utils.NormalizeForm(cfg.DefaultForm),
		concurrency:    cfg.Concurrency,
		persistTimeout: time.Duration(cfg.PersistTimeoutSec) * time.Second,
	}
	if svc.defaultForm == "" {
		svc.defaultForm = DefaultForm
	}
	if svc.concurrency < 1 {
		svc.concurrency = 1
	}
	if svc.persistTimeout <= 0 {
		svc.persistTimeout = defaultPersistTimeout
	}
	return svc
}

// Store returns the store results are persisted to.
func (s *Service) Store() store.Store { return s.store }

// Analyze runs one analysis. Persistence failures are logged, never returned.
func (s *Service) Analyze(ctx context.Context, ticker, form string) (*models.AnalysisResult, error) {
	ticker = utils.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, ErrMissingTicker
	}
	form = s.Form(form)

	start := time.Now()
	result, err := s.pipeline.Run(ctx, ticker, form)
	metrics.ObserveRun(form, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	metrics.ObserveTables(result.Tables)

	s.persist(ctx, result)
	return result, nil
}

// AnalyzeMany analyzes several tickers concurrently. Per-ticker failures are
// reported in the outcomes.
func (s *Service) AnalyzeMany(ctx context.Context, tickers []string, form string) []analyzer.BatchOutcome {
	form = s.Form(form)
	return analyzer.RunBatch(ctx, func(ctx context.Context, ticker string) (*models.AnalysisResult, error) {
		return s.Analyze(ctx, ticker, form)
	}, tickers, s.concurrency)
}

// Form normalizes form, falling back to the configured default.
func (s *Service) Form(form string) string {
	if form = utils.NormalizeForm(form); form == "" {
		return s.defaultForm
	}
	return form
}

func (s *Service) persist(ctx context.Context, result *models.AnalysisResult) {
	if store.IsDisabled(s.store) {
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.persistTimeout)
	defer cancel()

	if err := s.store.Upsert(pctx, result); err != nil {
		metrics.PersistFailed(s.store.Name())
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("backend", s.store.Name()).
			Str("ticker", result.Meta.Ticker).
			Msg("failed to persist analysis")
	}
}
