// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Config is the bloodbank service configuration.
type Config struct {
	Addr   string
	WebDir string

	Store struct {
		Kind        string
		SQLitePath  string
		DatabaseURL string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
		Prefix   string
	}

	Kafka struct {
		Brokers []string
		Topic   string
	}

	CredentialScheme string
	SecureCookies    bool

	OIDC struct {
		Issuer       string
		ClientID     string
		ClientSecret string
		RedirectURL  string
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load reads the configuration, applying defaults for unset variables.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Addr = getEnv("ADDR", ":8080")
	cfg.WebDir = getEnv("WEB_DIR", "web")

	cfg.Store.Kind = getEnv("STORE", StoreMemory)
	cfg.Store.SQLitePath = getEnv("SQLITE_PATH", "bloodbank.db")
	cfg.Store.DatabaseURL = os.Getenv("DATABASE_URL")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	cfg.Redis.Prefix = getEnv("REDIS_PREFIX", "bd_")
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil || db < 0 {
		return nil, fmt.Errorf("REDIS_DB must be a non-negative integer, got %q", os.Getenv("REDIS_DB"))
	}
	cfg.Redis.DB = db

	cfg.Kafka.Brokers = splitList(os.Getenv("KAFKA_BROKERS"))
	cfg.Kafka.Topic = getEnv("KAFKA_TOPIC", "bloodbank.requests")

	cfg.CredentialScheme = getEnv("CREDENTIAL_SCHEME", "plain")
	cfg.SecureCookies = getEnv("SECURE_COOKIES", "false") == "true"

	cfg.OIDC.Issuer = os.Getenv("OIDC_ISSUER")
	cfg.OIDC.ClientID = os.Getenv("OIDC_CLIENT_ID")
	cfg.OIDC.ClientSecret = os.Getenv("OIDC_CLIENT_SECRET")
	cfg.OIDC.RedirectURL = os.Getenv("OIDC_REDIRECT_URL")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Kind {
	case StoreMemory, StoreSQLite, StoreRedis:
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE=%s", StorePostgres)
		}
	default:
		return fmt.Errorf("unknown STORE %q", c.Store.Kind)
	}
	if c.OIDC.Issuer != "" && c.OIDC.ClientID == "" {
		return fmt.Errorf("OIDC_CLIENT_ID is required when OIDC_ISSUER is set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
