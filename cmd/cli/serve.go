package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/networknudge/networknudge/internal/initialization"
	"github.com/networknudge/networknudge/internal/version"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func NewServeCommand(opts *rootOptions) *cobra.Command {
	var withoutScheduler bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduled jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return withContainer(ctx, opts, func(ctx context.Context, container *initialization.Container) error {
				return runServe(ctx, container, !withoutScheduler)
			})
		},
	}

	cmd.Flags().BoolVar(&withoutScheduler, "no-scheduler", false, "Do not run the digest and sync jobs")

	return cmd
}

func runServe(ctx context.Context, container *initialization.Container, withScheduler bool) error {
	app, err := container.HTTPServer(ctx)
	if err != nil {
		return err
	}

	if withScheduler {
		jobs, err := container.Scheduler()
		if err != nil {
			return err
		}

		jobs.Start()
		defer jobs.Stop()
	}

	log.Info().
		Str("address", container.Config.HTTPAddress).
		Str("version", version.GetVersion()).
		Bool("scheduler", withScheduler).
		Msg("Starting networknudge service")

	if err := app.Listen(container.Config.HTTPAddress, fiber.ListenConfig{
		GracefulContext:       ctx,
		DisableStartupMessage: true,
	}); err != nil {
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}

	log.Info().Msg("Networknudge service stopped")

	return nil
}
