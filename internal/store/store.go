// Package store persists analysis results. Every backend upserts on the
// pair (meta.ticker, meta.period_end).
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/seenimoa/secanalyzer/internal/config"
	"github.com/seenimoa/secanalyzer/pkg/models"
)

// Store upserts analysis results.
type Store interface {
	Upsert(ctx context.Context, r *models.AnalysisResult) error
	Name() string
	Close(ctx context.Context) error
}

// ErrNilResult is returned when Upsert is given no result.
var ErrNilResult = errors.New("nil analysis result")

// Backend names accepted in store.backend.
const (
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
	BackendNone     = "none"
)

// Open builds the configured store. Missing settings or an unreachable
// backend yield Disabled with a warning; Open itself never fails.
func Open(ctx context.Context, cfg config.StoreConfig) Store {
	logger := zerolog.Ctx(ctx)
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))

	var (
		s   Store
		err error
	)
	switch backend {
	case "", BackendNone:
		return Disabled{}
	case BackendMongo:
		if cfg.Mongo.URI == "" {
			err = errors.New("store.mongo.uri not set")
			break
		}
		s, err = NewMongo(ctx, cfg.Mongo)
	case BackendPostgres:
		if cfg.Postgres.URL == "" {
			err = errors.New("store.postgres.url not set")
			break
		}
		s, err = NewPostgres(ctx, cfg.Postgres)
	case BackendS3:
		if cfg.S3.Bucket == "" {
			err = errors.New("store.s3.bucket not set")
			break
		}
		s, err = NewS3(ctx, cfg.S3)
	default:
		err = fmt.Errorf("unknown store backend %q", cfg.Backend)
	}

	if err != nil {
		logger.Warn().Err(err).Str("backend", backend).Msg("report store disabled")
		return Disabled{}
	}
	logger.Info().Str("backend", s.Name()).Msg("report store ready")
	return s
}

// Disabled is the no-op store used when persistence is not configured.
type Disabled struct{}

func (Disabled) Upsert(context.Context, *models.AnalysisResult) error { return nil }
func (Disabled) Name() string                                         { return BackendNone }
func (Disabled) Close(context.Context) error                          { return nil }

// IsDisabled reports whether s is the no-op store.
func IsDisabled(s Store) bool {
	_, ok := s.(Disabled)
	return s == nil || ok
}

// periodKey is the period component of the upsert key. Filings without a
// period end date share the empty key.
func periodKey(r *models.AnalysisResult) string {
	return models.Deref(r.Meta.PeriodEnd)
}
