// Package commands provides the CLI commands for claudiactl.
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"claudiactl/internal/config"
	"claudiactl/internal/logging"
)

// Version is set at build time.
var Version = "0.1.0"

// Global flags.
var (
	serverURL string
	logLevel  string
	logJSON   bool
)

var rootCmd = &cobra.Command{
	Use:   "claudiactl",
	Short: "Session controller for a Claudia server",
	Long: `claudiactl starts Claude sessions on a remote Claudia server and
streams their output in real time.

The server URL is taken from --server, then the CLAUDIA_SERVER_URL
environment variable, then http://localhost:3000.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env file is fine.
		_ = godotenv.Load()

		logging.Init(logging.Config{
			Level:  logging.ParseLevel(logLevel),
			Pretty: !logJSON,
		})
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Claudia server URL (or CLAUDIA_SERVER_URL)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "INFO", "Log level (DEBUG|INFO|WARN|ERROR)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit JSON logs instead of console output")

	rootCmd.SetVersionTemplate(fmt.Sprintf("claudiactl %s\n", Version))

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(healthCmd)
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		errColor.Fprintf(rootCmd.ErrOrStderr(), "error: %v\n", err)
	}
	return err
}

func resolveConfig() config.Config {
	return config.Resolve(serverURL)
}
