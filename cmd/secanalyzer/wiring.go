package main

import (
	"context"
	"time"

	"github.com/seenimoa/secanalyzer/internal/analyzer"
	"github.com/seenimoa/secanalyzer/internal/edgar"
	"github.com/seenimoa/secanalyzer/internal/service"
	"github.com/seenimoa/secanalyzer/internal/store"
)

// app holds the collaborators a command needs.
type app struct {
	client *edgar.Client
	cache  *edgar.RedisCache
	store  store.Store
	svc    *service.Service
}

// newApp wires the EDGAR client, the optional filing cache, the store (when
// persist is set) and the service.
func newApp(ctx context.Context, persist bool) *app {
	a := &app{store: store.Disabled{}}

	var opts []edgar.Option
	rc, err := edgar.NewRedisCache(ctx, cfg.Cache)
	switch {
	case err != nil:
		logger.Warn().Err(err).Msg("filing cache disabled")
	case rc != nil:
		a.cache = rc
		opts = append(opts, edgar.WithDocumentCache(rc, time.Duration(cfg.Cache.TTLSec)*time.Second))
	}
	a.client = edgar.New(cfg.SEC, opts...)

	if persist {
		a.store = store.Open(ctx, cfg.Store)
	}

	pipeline := analyzer.NewPipeline(a.client, analyzer.Options{
		AnnotateComparative: cfg.Analysis.AnnotateComparative,
	})
	a.svc = service.New(pipeline, a.store, cfg.Analysis)
	return a
}

func (a *app) Close(ctx context.Context) {
	if err := a.store.Close(ctx); err != nil {
		logger.Warn().Err(err).Msg("closing store")
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Warn().Err(err).Msg("closing filing cache")
		}
	}
}
