package config

import (
	"net/url"
	"os"
)

// SecretSource represents where a secret comes from.
type SecretSource string

const (
	SourceEnv    SecretSource = "env"
	SourceConfig SecretSource = "config"
	SourceNone   SecretSource = "none"
)

// SecretStatus represents the status of a credential or connection string.
type SecretStatus struct {
	Name   string       `json:"name"`
	Source SecretSource `json:"source"`
	IsSet  bool         `json:"is_set"`
	Masked string       `json:"masked,omitempty"` // e.g., "ops...com"
}

// CheckSecrets returns the status of the identity and connection settings.
func CheckSecrets(cfg *Config) []SecretStatus {
	return []SecretStatus{
		checkSecret("SEC Contact Email", cfg.SEC.Email, "SEC_EMAIL", "SECANALYZER_SEC_EMAIL"),
		checkSecret("MongoDB URI", redactURL(cfg.Store.Mongo.URI), "MONGODB_URI", "SECANALYZER_STORE_MONGO_URI"),
		checkSecret("Postgres URL", redactURL(cfg.Store.Postgres.URL), "DATABASE_URL", "SECANALYZER_STORE_POSTGRES_URL"),
		checkSecret("S3 Bucket", cfg.Store.S3.Bucket, "S3_BUCKET", "SECANALYZER_STORE_S3_BUCKET"),
		checkSecret("Redis Password", cfg.Cache.RedisPassword, "REDIS_PASSWORD", "SECANALYZER_CACHE_REDIS_PASSWORD"),
	}
}

// checkSecret checks if a value is set and where it came from.
func checkSecret(name, value string, envVars ...string) SecretStatus {
	status := SecretStatus{
		Name:   name,
		IsSet:  value != "",
		Source: SourceNone,
	}
	if value == "" {
		return status
	}

	status.Source = SourceConfig
	for _, env := range envVars {
		if os.Getenv(env) != "" {
			status.Source = SourceEnv
			break
		}
	}
	status.Masked = maskKey(value)
	return status
}

// redactURL drops the password from a connection URL.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}

// maskKey masks a value for display, showing only first 3 and last 3 chars.
func maskKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:3] + "..." + key[len(key)-3:]
}
