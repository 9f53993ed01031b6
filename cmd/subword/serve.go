package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/go-subword/internal/config"
	"github.com/example/go-subword/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the segmentation HTTP server",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if len(cfg.Models) == 0 {
				return fmt.Errorf("no models configured; add a models list to the config file")
			}

			registry, err := server.LoadModels(cfg.Models)
			if err != nil {
				return err
			}

			slog.Info("models loaded",
				slog.Int("count", len(cfg.Models)),
				slog.String("names", registry.Names()),
			)

			srv := server.New(cfg, registry).
				WithShutdownTimeout(time.Duration(cfg.Server.ShutdownTimeout) * time.Second)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Start(ctx)
		},
	}

	defaults := config.DefaultConfig()
	config.RegisterFlags(cmd.Flags(), defaults)

	return cmd
}
