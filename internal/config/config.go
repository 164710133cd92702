// Package config handles configuration loading for secanalyzer.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultCompanyName is the User-Agent company used when none is configured.
const DefaultCompanyName = "Stock Analysis MVP"

// Config represents the complete application configuration.
type Config struct {
	SEC      SECConfig      `mapstructure:"sec"      yaml:"sec"`
	API      APIConfig      `mapstructure:"api"      yaml:"api"`
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	Store    StoreConfig    `mapstructure:"store"    yaml:"store"`
	Cache    CacheConfig    `mapstructure:"cache"    yaml:"cache"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
}

// SECConfig holds EDGAR access settings. EDGAR requires every request to
// identify the caller by company and contact email.
type SECConfig struct {
	CompanyName string  `mapstructure:"company_name" yaml:"company_name"`
	Email       string  `mapstructure:"email"        yaml:"email"`
	BaseURL     string  `mapstructure:"base_url"     yaml:"base_url"`     // https://www.sec.gov
	DataURL     string  `mapstructure:"data_url"     yaml:"data_url"`     // https://data.sec.gov
	RateLimit   float64 `mapstructure:"rate_limit"   yaml:"rate_limit"`   // requests per second
	TimeoutSec  int     `mapstructure:"timeout_sec"  yaml:"timeout_sec"`
	CIKCacheTTL int     `mapstructure:"cik_cache_ttl" yaml:"cik_cache_ttl"` // seconds
}

// UserAgent returns the identity header value sent to EDGAR.
func (c SECConfig) UserAgent() string {
	name := c.CompanyName
	if name == "" {
		name = DefaultCompanyName
	}
	return strings.TrimSpace(name + " " + c.Email)
}

// Timeout returns the HTTP timeout as a duration.
func (c SECConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host           string   `mapstructure:"host"            yaml:"host"`
	Port           int      `mapstructure:"port"            yaml:"port"`
	CORSOrigins    []string `mapstructure:"cors_origins"    yaml:"cors_origins"`
	SanitizeTables bool     `mapstructure:"sanitize_tables" yaml:"sanitize_tables"`
	TimeoutSec     int      `mapstructure:"timeout_sec"     yaml:"timeout_sec"`
}

// Addr returns host:port.
func (c APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AnalysisConfig holds pipeline settings.
type AnalysisConfig struct {
	DefaultForm         string `mapstructure:"default_form"         yaml:"default_form"`
	Concurrency         int    `mapstructure:"concurrency"          yaml:"concurrency"`
	AnnotateComparative bool   `mapstructure:"annotate_comparative" yaml:"annotate_comparative"`
	PersistTimeoutSec   int    `mapstructure:"persist_timeout_sec"  yaml:"persist_timeout_sec"`
}

// StoreConfig selects and configures the report store.
type StoreConfig struct {
	Backend  string         `mapstructure:"backend"  yaml:"backend"` // "mongo", "postgres", "s3", "none"
	Mongo    MongoConfig    `mapstructure:"mongo"    yaml:"mongo"`
	Postgres PostgresConfig `mapstructure:"postgres" yaml:"postgres"`
	S3       S3Config       `mapstructure:"s3"       yaml:"s3"`
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI        string `mapstructure:"uri"        yaml:"uri"`
	Database   string `mapstructure:"database"   yaml:"database"`
	Collection string `mapstructure:"collection" yaml:"collection"`
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	URL      string `mapstructure:"url"       yaml:"url"`
	MaxConns int32  `mapstructure:"max_conns" yaml:"max_conns"`
}

// S3Config holds object storage settings.
type S3Config struct {
	Bucket       string `mapstructure:"bucket"         yaml:"bucket"`
	Prefix       string `mapstructure:"prefix"         yaml:"prefix"`
	Region       string `mapstructure:"region"         yaml:"region"`
	Profile      string `mapstructure:"profile"        yaml:"profile"`
	Endpoint     string `mapstructure:"endpoint"       yaml:"endpoint"` // MinIO / LocalStack
	UsePathStyle bool   `mapstructure:"use_path_style" yaml:"use_path_style"`
}

// CacheConfig holds the Redis filing cache settings. An empty address
// disables the cache.
type CacheConfig struct {
	RedisAddr     string `mapstructure:"redis_addr"     yaml:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password" yaml:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"       yaml:"redis_db"`
	TTLSec        int    `mapstructure:"ttl_sec"        yaml:"ttl_sec"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// LoadDotEnv loads variables from .env files into the process environment
// without overriding variables that are already set. Missing files are fine.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.secanalyzer/config.yaml (home directory)
//  3. /etc/secanalyzer/config.yaml (system)
//
// Environment variables override config file values.
// Format: SECANALYZER_<SECTION>_<KEY>, e.g., SECANALYZER_SEC_EMAIL.
// The un-prefixed deployment variables (SEC_EMAIL, MONGODB_URI,
// ALLOWED_ORIGINS, ...) win over both.
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".secanalyzer"))
	v.AddConfigPath("/etc/secanalyzer")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return unmarshal(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("SECANALYZER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// SEC defaults (EDGAR fair access allows 10 req/s)
	v.SetDefault("sec.company_name", DefaultCompanyName)
	v.SetDefault("sec.email", "")
	v.SetDefault("sec.base_url", "https://www.sec.gov")
	v.SetDefault("sec.data_url", "https://data.sec.gov")
	v.SetDefault("sec.rate_limit", 8.0)
	v.SetDefault("sec.timeout_sec", 60)
	v.SetDefault("sec.cik_cache_ttl", 86400) // 24 hours

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8000)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("api.sanitize_tables", false)
	v.SetDefault("api.timeout_sec", 120)

	// Analysis defaults
	v.SetDefault("analysis.default_form", "10-Q")
	v.SetDefault("analysis.concurrency", 4)
	v.SetDefault("analysis.annotate_comparative", false)
	v.SetDefault("analysis.persist_timeout_sec", 10)

	// Store defaults
	v.SetDefault("store.backend", "mongo")
	v.SetDefault("store.mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("store.mongo.database", "financials")
	v.SetDefault("store.mongo.collection", "reports")
	v.SetDefault("store.postgres.max_conns", 4)
	v.SetDefault("store.s3.prefix", "reports")
	v.SetDefault("store.s3.region", "us-east-1")

	// Cache defaults
	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.ttl_sec", 21600) // 6 hours

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// overrideFromEnv reads the conventional un-prefixed deployment variables.
func overrideFromEnv(cfg *Config) {
	setString := func(dst *string, env string) {
		if val := os.Getenv(env); val != "" {
			*dst = val
		}
	}

	setString(&cfg.SEC.CompanyName, "SEC_COMPANY_NAME")
	setString(&cfg.SEC.Email, "SEC_EMAIL")
	setString(&cfg.Store.Mongo.URI, "MONGODB_URI")
	setString(&cfg.Store.Mongo.Database, "MONGODB_DB")
	setString(&cfg.Store.Mongo.Collection, "MONGODB_COLLECTION")
	setString(&cfg.Store.Postgres.URL, "DATABASE_URL")
	setString(&cfg.Store.S3.Bucket, "S3_BUCKET")
	setString(&cfg.Store.S3.Region, "AWS_REGION")
	setString(&cfg.Cache.RedisAddr, "REDIS_ADDR")
	setString(&cfg.Cache.RedisPassword, "REDIS_PASSWORD")

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.API.CORSOrigins = splitList(origins)
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.API.Port = p
		}
	}
}

// splitList splits a comma separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
