// Package cli implements the braintrainer commands: the server and a few
// read-only views of the result log.
package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"braintrainer/internal/config"
	"braintrainer/internal/db"
	"braintrainer/internal/kv"
	"braintrainer/internal/results"

	"github.com/spf13/cobra"
)

var (
	backendFlag string
	pathFlag    string
	formatFlag  string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "braintrainer",
	Short: "Brain training games with progress tracking",
	Long:  "Serves the memory, reaction, pattern and focus games and reports on the stored result history.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&backendFlag, "backend", "b", "", "Store backend: sqlite, postgres, s3 or memory (default: $STORE_BACKEND)")
	RootCmd.PersistentFlags().StringVarP(&pathFlag, "path", "p", "", "SQLite file (default: $STORE_PATH)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: json or text")
}

// loadConfig reads the environment and applies the persistent flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Parse()
	if err != nil {
		return config.Config{}, err
	}
	if backendFlag != "" {
		cfg.StoreBackend = backendFlag
	}
	if pathFlag != "" {
		cfg.StorePath = pathFlag
	}
	return cfg, cfg.Validate()
}

func openBackend(ctx context.Context, cfg config.Config) (kv.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		return kv.OpenSQLite(cfg.StorePath)
	case config.BackendPostgres:
		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(); err != nil {
			database.Close()
			return nil, err
		}
		log.Println("[DB] Database connected and migrations applied")
		return database, nil
	case config.BackendS3:
		return kv.OpenS3(ctx, kv.S3Options{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
			Prefix:   cfg.S3Prefix,
		})
	case config.BackendMemory:
		log.Println("[Results] memory backend, results are lost on exit")
		return kv.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

// loadLog opens the configured backend just long enough to read the log.
func loadLog(ctx context.Context) (results.Log, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	backend, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening %s backend: %w", cfg.StoreBackend, err)
	}
	defer backend.Close()
	return results.Load(ctx, backend, cfg.StoreKey), nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
