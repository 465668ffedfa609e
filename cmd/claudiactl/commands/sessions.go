package commands

import (
	"context"
	"fmt"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"claudiactl/internal/client"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List running sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := resolveConfig()
		api := client.New(cfg)

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.HTTPTimeout)
		defer cancel()

		sessions, err := api.ListRunningSessions(ctx)
		if err != nil {
			return err
		}

		if len(sessions) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No running sessions")
			return nil
		}

		tbl := table.New("SESSION", "MODEL", "PROJECT", "STARTED").
			WithWriter(cmd.OutOrStdout()).
			WithHeaderFormatter(headerColor.SprintfFunc())
		for _, s := range sessions {
			tbl.AddRow(s.SessionID, s.Model, s.ProjectPath, s.StartedAt)
		}
		tbl.Print()
		return nil
	},
}
