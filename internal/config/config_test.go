package config

import (
	"os"
	"testing"
	"time"
)

var allKeys = []string{
	"PORT", "STORE_BACKEND", "STORE_PATH", "STORE_KEY", "DATABASE_URL",
	"S3_BUCKET", "S3_REGION", "S3_ENDPOINT", "S3_PREFIX",
	"SESSION_TTL", "SWEEP_INTERVAL", "DATE_LAYOUT",
}

// clearEnv unsets every variable Load reads; t.Setenv restores them after
// the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.StoreBackend != BackendSQLite {
		t.Errorf("StoreBackend = %q, want %q", cfg.StoreBackend, BackendSQLite)
	}
	if cfg.StorePath != "data/brain_training.db" {
		t.Errorf("StorePath = %q", cfg.StorePath)
	}
	if cfg.StoreKey != "brain_training_history" {
		t.Errorf("StoreKey = %q", cfg.StoreKey)
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, "")
	}
	if cfg.S3Region != "us-east-1" {
		t.Errorf("S3Region = %q", cfg.S3Region)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v, want %v", cfg.SessionTTL, time.Hour)
	}
	if cfg.SweepInterval != 5*time.Minute {
		t.Errorf("SweepInterval = %v, want %v", cfg.SweepInterval, 5*time.Minute)
	}
	if cfg.DateLayout != "1/2/2006" {
		t.Errorf("DateLayout = %q", cfg.DateLayout)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/braintrainer")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "3000")
	}
	if cfg.DatabaseURL != "postgres://localhost/braintrainer" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v, want %v", cfg.SessionTTL, 30*time.Minute)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_TTL", "abc")

	if _, err := Load(); err == nil {
		t.Error("Load() with invalid SESSION_TTL should fail")
	}
}

func TestValidate(t *testing.T) {
	base := Config{StoreBackend: BackendSQLite, SessionTTL: time.Hour, SweepInterval: time.Minute}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"sqlite", func(c *Config) {}, false},
		{"memory", func(c *Config) { c.StoreBackend = BackendMemory }, false},
		{"postgres without url", func(c *Config) { c.StoreBackend = BackendPostgres }, true},
		{"postgres", func(c *Config) { c.StoreBackend = BackendPostgres; c.DatabaseURL = "postgres://x" }, false},
		{"s3 without bucket", func(c *Config) { c.StoreBackend = BackendS3 }, true},
		{"s3", func(c *Config) { c.StoreBackend = BackendS3; c.S3Bucket = "results" }, false},
		{"unknown backend", func(c *Config) { c.StoreBackend = "redis" }, true},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }, true},
	}
	for _, tt := range tests {
		cfg := base
		tt.mutate(&cfg)
		if err := cfg.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestParse_SkipsValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "postgres")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.StoreBackend != BackendPostgres {
		t.Errorf("StoreBackend = %q, want %q", cfg.StoreBackend, BackendPostgres)
	}
	if _, err := Load(); err == nil {
		t.Error("Load() should reject postgres without DATABASE_URL")
	}
}
