package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"claudiactl/internal/client"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := resolveConfig()
		api := client.New(cfg)

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.HTTPTimeout)
		defer cancel()

		health, err := api.CheckHealth(ctx)
		if err != nil {
			return err
		}

		noticeColor.Fprintf(cmd.OutOrStdout(), "server is healthy: %s\n", cfg.ServerURL)
		out, err := json.MarshalIndent(health, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}
