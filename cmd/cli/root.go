package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/networknudge/networknudge/internal/initialization"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	debug      bool
	configFile string
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "networknudge",
		Short: "Network Nudge service CLI",
		Long: `Network Nudge keeps LinkedIn connections in sync and reminds users to stay in touch
with the people in their network.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if opts.debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to a config file")

	rootCmd.AddCommand(NewServeCommand(opts))
	rootCmd.AddCommand(NewSyncCommand(opts))
	rootCmd.AddCommand(NewNudgesCommand(opts))
	rootCmd.AddCommand(NewDigestCommand(opts))
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// withContainer loads the config, builds the container and closes it after run.
func withContainer(ctx context.Context, opts *rootOptions, run func(ctx context.Context, container *initialization.Container) error) error {
	config, err := initialization.LoadConfig(opts.configFile)
	if err != nil {
		return err
	}

	container, err := initialization.NewContainer(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer container.Close(context.Background())

	return run(ctx, container)
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
