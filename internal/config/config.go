package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
	BackendMemory   = "memory"
)

type Config struct {
	Port          string        `env:"PORT"           envDefault:"8080"`
	StoreBackend  string        `env:"STORE_BACKEND"  envDefault:"sqlite"`
	StorePath     string        `env:"STORE_PATH"     envDefault:"data/brain_training.db"`
	StoreKey      string        `env:"STORE_KEY"      envDefault:"brain_training_history"`
	DatabaseURL   string        `env:"DATABASE_URL"`
	S3Bucket      string        `env:"S3_BUCKET"`
	S3Region      string        `env:"S3_REGION"      envDefault:"us-east-1"`
	S3Endpoint    string        `env:"S3_ENDPOINT"`
	S3Prefix      string        `env:"S3_PREFIX"`
	SessionTTL    time.Duration `env:"SESSION_TTL"    envDefault:"1h"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"5m"`
	DateLayout    string        `env:"DATE_LAYOUT"    envDefault:"1/2/2006"`
}

// Load reads the configuration and validates it.
func Load() (Config, error) {
	cfg, err := Parse()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse reads an optional .env file and then the environment without
// validating the result, so callers can apply overrides first.
func Parse() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[Config] reading .env: %v\n", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendSQLite, BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("STORE_BACKEND=postgres requires DATABASE_URL")
		}
	case BackendS3:
		if c.S3Bucket == "" {
			return errors.New("STORE_BACKEND=s3 requires S3_BUCKET")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.SessionTTL <= 0 || c.SweepInterval <= 0 {
		return errors.New("SESSION_TTL and SWEEP_INTERVAL must be positive")
	}
	return nil
}
