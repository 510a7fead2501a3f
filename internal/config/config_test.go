package config

import (
	"testing"
)

var allKeys = []string{
	"ADDR", "WEB_DIR", "STORE", "SQLITE_PATH", "DATABASE_URL",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_PREFIX",
	"KAFKA_BROKERS", "KAFKA_TOPIC", "CREDENTIAL_SCHEME", "SECURE_COOKIES",
	"OIDC_ISSUER", "OIDC_CLIENT_ID", "OIDC_CLIENT_SECRET", "OIDC_REDIRECT_URL",
	"LOG_LEVEL", "LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Errorf("Expected ADDR default ':8080', got '%s'", cfg.Addr)
	}
	if cfg.Store.Kind != StoreMemory {
		t.Errorf("Expected STORE default 'memory', got '%s'", cfg.Store.Kind)
	}
	if cfg.Store.SQLitePath != "bloodbank.db" {
		t.Errorf("Expected SQLITE_PATH default 'bloodbank.db', got '%s'", cfg.Store.SQLitePath)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.DB != 0 || cfg.Redis.Prefix != "bd_" {
		t.Errorf("Unexpected redis defaults: %+v", cfg.Redis)
	}
	if cfg.CredentialScheme != "plain" {
		t.Errorf("Expected CREDENTIAL_SCHEME default 'plain', got '%s'", cfg.CredentialScheme)
	}
	if cfg.SecureCookies {
		t.Error("Expected SECURE_COOKIES default false")
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Unexpected log defaults: %+v", cfg.Log)
	}
	if len(cfg.Kafka.Brokers) != 0 || cfg.Kafka.Topic != "bloodbank.requests" {
		t.Errorf("Unexpected kafka defaults: %+v", cfg.Kafka)
	}
	if cfg.OIDC.Issuer != "" {
		t.Errorf("Expected OIDC disabled by default, got issuer '%s'", cfg.OIDC.Issuer)
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADDR", ":9090")
	t.Setenv("STORE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@db/bloodbank?sslmode=disable")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CREDENTIAL_SCHEME", "bcrypt")
	t.Setenv("SECURE_COOKIES", "true")
	t.Setenv("OIDC_ISSUER", "https://id.example.com")
	t.Setenv("OIDC_CLIENT_ID", "bloodbank")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Addr != ":9090" {
		t.Errorf("Expected ADDR ':9090', got '%s'", cfg.Addr)
	}
	if cfg.Store.Kind != StorePostgres || cfg.Store.DatabaseURL == "" {
		t.Errorf("Unexpected store config: %+v", cfg.Store)
	}
	if cfg.Redis.DB != 3 {
		t.Errorf("Expected REDIS_DB 3, got %d", cfg.Redis.DB)
	}
	if cfg.CredentialScheme != "bcrypt" || !cfg.SecureCookies {
		t.Errorf("Unexpected auth config: scheme=%s secure=%v", cfg.CredentialScheme, cfg.SecureCookies)
	}
	if cfg.OIDC.Issuer != "https://id.example.com" || cfg.OIDC.ClientID != "bloodbank" {
		t.Errorf("Unexpected OIDC config: %+v", cfg.OIDC)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "console" {
		t.Errorf("Unexpected log config: %+v", cfg.Log)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[0] != "k1:9092" || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Errorf("Unexpected kafka brokers: %v", cfg.Kafka.Brokers)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown store", map[string]string{"STORE": "mongo"}},
		{"postgres without url", map[string]string{"STORE": "postgres"}},
		{"bad redis db", map[string]string{"REDIS_DB": "one"}},
		{"negative redis db", map[string]string{"REDIS_DB": "-1"}},
		{"issuer without client", map[string]string{"OIDC_ISSUER": "https://id.example.com"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}
