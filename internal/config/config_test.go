package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

var deploymentEnv = []string{
	"SEC_COMPANY_NAME", "SEC_EMAIL", "ALLOWED_ORIGINS", "PORT",
	"MONGODB_URI", "MONGODB_DB", "MONGODB_COLLECTION", "DATABASE_URL",
	"S3_BUCKET", "AWS_REGION", "REDIS_ADDR", "REDIS_PASSWORD",
	"SECANALYZER_SEC_EMAIL", "SECANALYZER_STORE_BACKEND",
}

// clearEnv blanks every variable the loader reads for the test's duration.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, e := range deploymentEnv {
		t.Setenv(e, "")
	}
}

// ── Load / Defaults ──

func TestLoadReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// SEC defaults
	if cfg.SEC.CompanyName != DefaultCompanyName {
		t.Errorf("SEC.CompanyName: got %q, want %q", cfg.SEC.CompanyName, DefaultCompanyName)
	}
	if cfg.SEC.BaseURL != "https://www.sec.gov" {
		t.Errorf("SEC.BaseURL: got %q", cfg.SEC.BaseURL)
	}
	if cfg.SEC.DataURL != "https://data.sec.gov" {
		t.Errorf("SEC.DataURL: got %q", cfg.SEC.DataURL)
	}
	if cfg.SEC.RateLimit != 8 {
		t.Errorf("SEC.RateLimit: got %f, want 8", cfg.SEC.RateLimit)
	}
	if cfg.SEC.Timeout() != 60*time.Second {
		t.Errorf("SEC.Timeout: got %v, want 60s", cfg.SEC.Timeout())
	}

	// API defaults
	if cfg.API.Addr() != "0.0.0.0:8000" {
		t.Errorf("API.Addr: got %q, want 0.0.0.0:8000", cfg.API.Addr())
	}
	if !reflect.DeepEqual(cfg.API.CORSOrigins, []string{"http://localhost:3000"}) {
		t.Errorf("API.CORSOrigins: got %v", cfg.API.CORSOrigins)
	}
	if cfg.API.SanitizeTables {
		t.Error("API.SanitizeTables should be false by default")
	}

	// Analysis defaults
	if cfg.Analysis.DefaultForm != "10-Q" {
		t.Errorf("Analysis.DefaultForm: got %q, want 10-Q", cfg.Analysis.DefaultForm)
	}
	if cfg.Analysis.Concurrency != 4 {
		t.Errorf("Analysis.Concurrency: got %d, want 4", cfg.Analysis.Concurrency)
	}
	if cfg.Analysis.AnnotateComparative {
		t.Error("Analysis.AnnotateComparative should be false by default")
	}

	// Store defaults
	if cfg.Store.Backend != "mongo" {
		t.Errorf("Store.Backend: got %q, want mongo", cfg.Store.Backend)
	}
	if cfg.Store.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("Store.Mongo.URI: got %q", cfg.Store.Mongo.URI)
	}
	if cfg.Store.Mongo.Database != "financials" || cfg.Store.Mongo.Collection != "reports" {
		t.Errorf("Store.Mongo: got %s.%s", cfg.Store.Mongo.Database, cfg.Store.Mongo.Collection)
	}

	// Cache defaults
	if cfg.Cache.RedisAddr != "" {
		t.Errorf("Cache.RedisAddr: got %q, want empty", cfg.Cache.RedisAddr)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging: got %q/%q", cfg.Logging.Level, cfg.Logging.Format)
	}
}

// ── LoadFromFile ──

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	cfgPath := filepath.Join(t.TempDir(), "test_config.yaml")
	content := []byte(`
sec:
  company_name: "Acme Research"
  email: "ops@acme.test"
  rate_limit: 5
api:
  port: 9090
  cors_origins: ["https://dash.acme.test"]
  sanitize_tables: true
analysis:
  default_form: "6-K"
  annotate_comparative: true
store:
  backend: "postgres"
  postgres:
    url: "postgres://user:secret@db:5432/reports"
cache:
  redis_addr: "redis:6379"
logging:
  level: "debug"
  format: "text"
`)
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := LoadFromFile(cfgPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if got := cfg.SEC.UserAgent(); got != "Acme Research ops@acme.test" {
		t.Errorf("SEC.UserAgent: got %q", got)
	}
	if cfg.SEC.RateLimit != 5 {
		t.Errorf("SEC.RateLimit: got %f, want 5", cfg.SEC.RateLimit)
	}
	if cfg.API.Port != 9090 || !cfg.API.SanitizeTables {
		t.Errorf("API: got port %d sanitize %v", cfg.API.Port, cfg.API.SanitizeTables)
	}
	if !reflect.DeepEqual(cfg.API.CORSOrigins, []string{"https://dash.acme.test"}) {
		t.Errorf("API.CORSOrigins: got %v", cfg.API.CORSOrigins)
	}
	if cfg.Analysis.DefaultForm != "6-K" || !cfg.Analysis.AnnotateComparative {
		t.Errorf("Analysis: got %+v", cfg.Analysis)
	}
	if cfg.Store.Backend != "postgres" || cfg.Store.Postgres.URL == "" {
		t.Errorf("Store: got %+v", cfg.Store)
	}
	if cfg.Store.Mongo.Database != "financials" {
		t.Errorf("unset keys should keep defaults, got Mongo.Database %q", cfg.Store.Mongo.Database)
	}
	if cfg.Cache.RedisAddr != "redis:6379" {
		t.Errorf("Cache.RedisAddr: got %q", cfg.Cache.RedisAddr)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("Logging: got %+v", cfg.Logging)
	}
}

func TestLoadFromFileNotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("LoadFromFile() with nonexistent path should return error")
	}
}

// ── overrideFromEnv ──

func TestOverrideFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SEC_EMAIL", "me@example.com")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com ,")
	t.Setenv("MONGODB_URI", "mongodb://mongo:27017")
	t.Setenv("MONGODB_DB", "sec")
	t.Setenv("MONGODB_COLLECTION", "filings")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("PORT", "8081")

	cfg := &Config{}
	overrideFromEnv(cfg)

	if cfg.SEC.Email != "me@example.com" {
		t.Errorf("SEC.Email: got %q", cfg.SEC.Email)
	}
	want := []string{"http://localhost:3000", "https://app.example.com"}
	if !reflect.DeepEqual(cfg.API.CORSOrigins, want) {
		t.Errorf("CORSOrigins: got %v, want %v", cfg.API.CORSOrigins, want)
	}
	if cfg.Store.Mongo.URI != "mongodb://mongo:27017" || cfg.Store.Mongo.Database != "sec" || cfg.Store.Mongo.Collection != "filings" {
		t.Errorf("Mongo: got %+v", cfg.Store.Mongo)
	}
	if cfg.Cache.RedisAddr != "cache:6379" {
		t.Errorf("RedisAddr: got %q", cfg.Cache.RedisAddr)
	}
	if cfg.API.Port != 8081 {
		t.Errorf("API.Port: got %d, want 8081", cfg.API.Port)
	}
}

func TestOverrideFromEnvNoEnvSet(t *testing.T) {
	clearEnv(t)

	cfg := &Config{SEC: SECConfig{Email: "from-config@example.com"}}
	overrideFromEnv(cfg)

	if cfg.SEC.Email != "from-config@example.com" {
		t.Errorf("SEC.Email should stay as configured when env is unset, got %q", cfg.SEC.Email)
	}
}

func TestUserAgentFallsBackToDefaultCompany(t *testing.T) {
	c := SECConfig{Email: "a@b.c"}
	if got := c.UserAgent(); got != DefaultCompanyName+" a@b.c" {
		t.Errorf("UserAgent: got %q", got)
	}
	if got := (SECConfig{}).UserAgent(); got != DefaultCompanyName {
		t.Errorf("UserAgent without email: got %q", got)
	}
}

// ── LoadDotEnv ──

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("SEC_EMAIL")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("SEC_EMAIL=dotenv@example.com\n"), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env"))

	if got := os.Getenv("SEC_EMAIL"); got != "dotenv@example.com" {
		t.Errorf("SEC_EMAIL: got %q", got)
	}
}

// ── Secrets ──

func TestCheckSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://user:hunter22@db:5432/reports")

	cfg := &Config{
		SEC: SECConfig{Email: "research@example.com"},
		Store: StoreConfig{
			Postgres: PostgresConfig{URL: "postgres://user:hunter22@db:5432/reports"},
		},
	}
	statuses := CheckSecrets(cfg)
	byName := make(map[string]SecretStatus, len(statuses))
	for _, s := range statuses {
		byName[s.Name] = s
	}

	email := byName["SEC Contact Email"]
	if !email.IsSet || email.Source != SourceConfig || email.Masked != "res...com" {
		t.Errorf("SEC Contact Email status: %+v", email)
	}
	pg := byName["Postgres URL"]
	if !pg.IsSet || pg.Source != SourceEnv {
		t.Errorf("Postgres URL status: %+v", pg)
	}
	if s3 := byName["S3 Bucket"]; s3.IsSet || s3.Source != SourceNone {
		t.Errorf("S3 Bucket status: %+v", s3)
	}
}

func TestRedactURL(t *testing.T) {
	got := redactURL("postgres://user:hunter22@db:5432/reports")
	if got != "postgres://user:xxxxx@db:5432/reports" {
		t.Errorf("redactURL: got %q", got)
	}
	if got := redactURL("mongodb://localhost:27017"); got != "mongodb://localhost:27017" {
		t.Errorf("redactURL without credentials: got %q", got)
	}
}

// ── maskKey ──

func TestMaskKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "***"},
		{"abcd", "***"},
		{"12345678", "***"},
		{"123456789", "123...789"},
		{"ABCDEFGHIJKLMNOP", "ABC...NOP"},
	}
	for _, tc := range tests {
		if got := maskKey(tc.input); got != tc.want {
			t.Errorf("maskKey(%q): got %q, want %q", tc.input, got, tc.want)
		}
	}
}
