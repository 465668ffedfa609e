package commands

import (
	"context"

	"github.com/spf13/cobra"

	"claudiactl/internal/client"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel <session-id>",
	Short: "Cancel a running session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := resolveConfig()
		api := client.New(cfg)

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.HTTPTimeout)
		defer cancel()

		cancelled, err := api.CancelSession(ctx, args[0])
		if err != nil {
			return err
		}

		if cancelled {
			noticeColor.Fprintf(cmd.OutOrStdout(), "session cancelled: %s\n", args[0])
		} else {
			warnColor.Fprintf(cmd.OutOrStdout(), "session was not cancelled: %s\n", args[0])
		}
		return nil
	},
}
