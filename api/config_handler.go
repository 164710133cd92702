package api

import (
	"net/http"

	"github.com/seenimoa/secanalyzer/internal/config"
)

// ConfigResponse is the JSON body of GET /api/v1/config. Connection strings
// and credentials are never included; see /api/v1/config/keys.
type ConfigResponse struct {
	SECBaseURL          string   `json:"sec_base_url"`
	SECIdentity         string   `json:"sec_identity"`
	RateLimit           float64  `json:"rate_limit"`
	DefaultForm         string   `json:"default_form"`
	Concurrency         int      `json:"concurrency"`
	AnnotateComparative bool     `json:"annotate_comparative"`
	SanitizeTables      bool     `json:"sanitize_tables"`
	StoreBackend        string   `json:"store_backend"`
	CacheEnabled        bool     `json:"cache_enabled"`
	CORSOrigins         []string `json:"cors_origins"`
}

func newConfigResponse(cfg *config.Config) ConfigResponse {
	return ConfigResponse{
		SECBaseURL:          cfg.SEC.BaseURL,
		SECIdentity:         cfg.SEC.CompanyName,
		RateLimit:           cfg.SEC.RateLimit,
		DefaultForm:         cfg.Analysis.DefaultForm,
		Concurrency:         cfg.Analysis.Concurrency,
		AnnotateComparative: cfg.Analysis.AnnotateComparative,
		SanitizeTables:      cfg.API.SanitizeTables,
		StoreBackend:        cfg.Store.Backend,
		CacheEnabled:        cfg.Cache.RedisAddr != "",
		CORSOrigins:         cfg.API.CORSOrigins,
	}
}

// handleGetConfig returns the non-sensitive running configuration.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, APIResponse{
		Success: true,
		Data:    newConfigResponse(s.cfg),
	})
}

// handleGetConfigKeys returns the status of credentials and connection strings.
func (s *Server) handleGetConfigKeys(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, APIResponse{
		Success: true,
		Data:    config.CheckSecrets(s.cfg),
	})
}
