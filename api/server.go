// Package api provides the HTTP server for the filing analyzer.
//
// It exposes the dashboard's analyze endpoint, a recent-filings listing,
// health and configuration status, and Prometheus metrics.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os/signal"
	"slices"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/seenimoa/secanalyzer/internal/config"
	"github.com/seenimoa/secanalyzer/internal/logging"
	"github.com/seenimoa/secanalyzer/internal/metrics"
	"github.com/seenimoa/secanalyzer/pkg/models"
	"github.com/seenimoa/secanalyzer/pkg/utils"
)

const (
	defaultFilingsLimit = 10
	maxFilingsLimit     = 100
	shutdownGrace       = 15 * time.Second
)

// Analyzer runs one filing analysis.
type Analyzer interface {
	Analyze(ctx context.Context, ticker, form string) (*models.AnalysisResult, error)
}

// FilingLister lists a company's recent filings.
type FilingLister interface {
	RecentFilings(ctx context.Context, ticker, form string, limit int) ([]models.FilingEntry, error)
}

// Deps are the collaborators the server delegates to.
type Deps struct {
	Analyzer Analyzer
	Filings  FilingLister
	Logger   zerolog.Logger
	Version  string
}

// Server is the HTTP API server.
type Server struct {
	router    chi.Router
	cfg       *config.Config
	deps      Deps
	sanitizer *bluemonday.Policy
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config, deps Deps) *Server {
	if deps.Version == "" {
		deps.Version = "dev"
	}
	srv := &Server{cfg: cfg, deps: deps}
	if cfg.API.SanitizeTables {
		srv.sanitizer = tablePolicy()
	}
	srv.router = srv.buildRouter()
	return srv
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server and shuts it down gracefully on
// SIGINT or SIGTERM.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: s.requestTimeout() + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.deps.Logger.Info().Str("addr", addr).Msg("API server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.deps.Logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func (s *Server) requestTimeout() time.Duration {
	if s.cfg.API.TimeoutSec > 0 {
		return time.Duration(s.cfg.API.TimeoutSec) * time.Second
	}
	return 120 * time.Second
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(s.deps.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.requestTimeout()))

	// CORS
	r.Use(cors.Handler(corsOptions(s.cfg.API.CORSOrigins)))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/analyze", s.handleAnalyze)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/analyze", s.handleAnalyze)
		r.Get("/filings", s.handleFilings)

		// Configuration
		r.Get("/config", s.handleGetConfig)
		r.Get("/config/keys", s.handleGetConfigKeys)
	})

	return r
}

// corsOptions builds the CORS policy. No configured origins means no
// cross-origin caller is allowed; a "*" origin never allows credentials.
func corsOptions(origins []string) cors.Options {
	opts := cors.Options{
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}
	switch {
	case len(origins) == 0:
		// an empty AllowedOrigins means "all" to go-chi/cors
		opts.AllowOriginFunc = func(*http.Request, string) bool { return false }
	case slices.Contains(origins, "*"):
		opts.AllowedOrigins = []string{"*"}
	default:
		opts.AllowedOrigins = origins
		opts.AllowCredentials = true
	}
	return opts
}

// ============================================================
// Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// FilingsResponse is the data of GET /api/v1/filings.
type FilingsResponse struct {
	Ticker  string               `json:"ticker"`
	Form    string               `json:"form"`
	Count   int                  `json:"count"`
	Filings []models.FilingEntry `json:"filings"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{
		"message": "SEC Analyzer API is running",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":  "ok",
			"version": s.deps.Version,
			"time":    time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// handleAnalyze returns the bare AnalysisResult the dashboard consumes.
// Errors use a bare {"error": msg} body rather than the envelope.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ticker := utils.NormalizeTicker(r.URL.Query().Get("ticker"))
	if ticker == "" {
		writeJSON(r.Context(), w, http.StatusBadRequest, map[string]string{"error": "ticker is required"})
		return
	}
	form := r.URL.Query().Get("form")

	result, err := s.deps.Analyzer.Analyze(r.Context(), ticker, form)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("ticker", ticker).Msg("analysis failed")
		writeJSON(r.Context(), w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, s.sanitize(result))
}

func (s *Server) handleFilings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ticker := utils.NormalizeTicker(q.Get("ticker"))
	if ticker == "" {
		writeError(r.Context(), w, http.StatusBadRequest, "ticker is required")
		return
	}
	if s.deps.Filings == nil {
		writeError(r.Context(), w, http.StatusServiceUnavailable, "filings listing not available")
		return
	}

	form := utils.NormalizeForm(q.Get("form"))
	if form == "" {
		form = utils.NormalizeForm(s.cfg.Analysis.DefaultForm)
	}

	limit := defaultFilingsLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(r.Context(), w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxFilingsLimit)
	}

	filings, err := s.deps.Filings.RecentFilings(r.Context(), ticker, form, limit)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("ticker", ticker).Msg("filings lookup failed")
		writeError(r.Context(), w, http.StatusBadGateway, err.Error())
		return
	}
	if filings == nil {
		filings = []models.FilingEntry{}
	}

	writeJSON(r.Context(), w, http.StatusOK, APIResponse{
		Success: true,
		Data: FilingsResponse{
			Ticker:  ticker,
			Form:    form,
			Count:   len(filings),
			Filings: filings,
		},
	})
}

// ============================================================
// Helpers
// ============================================================

// tablePolicy keeps table structure and the badge classes and drops
// scripts, event handlers and inline XBRL wrappers.
func tablePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowStyling()
	p.AllowElements("span")
	return p
}

// sanitize returns a copy of result with its table fragments passed through
// the sanitizer, or result itself when sanitizing is off.
func (s *Server) sanitize(result *models.AnalysisResult) *models.AnalysisResult {
	if s.sanitizer == nil || result == nil {
		return result
	}
	out := *result
	for _, slot := range []**string{&out.Tables.IncomeStatement, &out.Tables.BalanceSheet, &out.Tables.CashFlow} {
		if *slot != nil {
			*slot = models.StringPtr(s.sanitizer.Sanitize(**slot))
		}
	}
	return &out
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to write JSON response")
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, msg string) {
	writeJSON(ctx, w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
