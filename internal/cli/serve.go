package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"braintrainer/internal/server"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Run:   runServe,
	}

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		exitErr("config", err)
	}
	backend, err := openBackend(ctx, cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer backend.Close()

	if err := server.Run(ctx, cfg, backend); err != nil {
		exitErr("serve", err)
	}
}
