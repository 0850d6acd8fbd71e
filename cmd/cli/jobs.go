package cli

import (
	"context"
	"fmt"

	"github.com/networknudge/networknudge/internal/initialization"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func NewSyncCommand(opts *rootOptions) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync LinkedIn connections and activity",
		Long:  `Sync one user with --user, or every user with a connected LinkedIn account.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd.Context(), opts, func(ctx context.Context, container *initialization.Container) error {
				if userID == "" {
					synced, err := container.SyncManager.SyncAll(ctx)
					if err != nil {
						return err
					}

					fmt.Fprintf(cmd.OutOrStdout(), "Synced %d accounts\n", synced)
					return nil
				}

				result, err := container.SyncManager.SyncAccount(ctx, userID)
				if err != nil {
					return err
				}

				if result.Degraded {
					log.Warn().Str("user_id", userID).Msg("Some LinkedIn reads failed, results are partial")
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Synced %d connections and %d activities\n", result.Connections, result.Activities)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID to sync")

	return cmd
}

func NewNudgesCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nudges",
		Short: "Manage nudges",
	}

	var userID string

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate nudges for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd.Context(), opts, func(ctx context.Context, container *initialization.Container) error {
				result, err := container.NudgeManager.GenerateNudges(ctx, userID)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d created)\n", result.Message, result.NudgesCreated)
				return nil
			})
		},
	}

	generate.Flags().StringVar(&userID, "user", "", "User ID to generate nudges for")
	_ = generate.MarkFlagRequired("user")

	cmd.AddCommand(generate)

	return cmd
}

func NewDigestCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Manage digest e-mails",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "send",
		Short: "Send the digest e-mails due now",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd.Context(), opts, func(ctx context.Context, container *initialization.Container) error {
				result, err := container.DigestManager.SendDigests(ctx)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d sent)\n", result.Message, result.EmailsSent)
				return nil
			})
		},
	})

	return cmd
}
