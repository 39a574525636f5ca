package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/sensa-ai-tech/OATH/internal/app"
	"github.com/spf13/cobra"
)

// ServeCommand HTTP API, Kafka consumers и планировщик джоб
func ServeCommand(appName string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, Kafka consumers and scheduled jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.NewEnvConfig(appName)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return app.New(appName, cfg).Run(ctx)
		},
	}
}
