package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"claudiactl/internal/client"
	"claudiactl/internal/logging"
	"claudiactl/internal/stream"
)

const defaultModel = "claude-3-5-sonnet-20241022"

const cancelTimeout = 5 * time.Second

var (
	runProject        string
	runPrompt         string
	runModel          string
	cancelOnInterrupt bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start a session and stream its output",
	Long: `Start a Claude session on the server and stream its output until the
response completes, fails, or the stream is interrupted.`,
	RunE: runSession,
}

func init() {
	runCmd.Flags().StringVar(&runProject, "project", "", "Project path the agent operates on (defaults to the current directory)")
	runCmd.Flags().StringVar(&runPrompt, "prompt", "", "Prompt to send to the session")
	runCmd.Flags().StringVar(&runModel, "model", defaultModel, "Model identifier")
	runCmd.Flags().BoolVar(&cancelOnInterrupt, "cancel-on-interrupt", false, "Cancel the remote session when interrupted")
	runCmd.MarkFlagRequired("prompt")
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg := resolveConfig()

	project := runProject
	if project == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve project path: %w", err)
		}
		project = wd
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := client.New(cfg)

	if _, err := api.CheckHealth(ctx); err != nil {
		return err
	}

	sessionID, err := api.StartSession(ctx, project, runPrompt, runModel)
	if err != nil {
		return err
	}
	noticeColor.Fprintf(cmd.ErrOrStderr(), "session started: %s\n", sessionID)

	st, err := stream.Subscribe(ctx, cfg, sessionID)
	if err != nil {
		return err
	}
	defer st.Close()

	var failed *stream.Event
	for evt := range st.Events() {
		switch evt.Kind {
		case stream.KindStatus:
			statusColor.Fprintf(cmd.ErrOrStderr(), "status: %s\n", evt.Status)
		case stream.KindStarted:
			statusColor.Fprintln(cmd.ErrOrStderr(), "responding...")
		case stream.KindContent:
			fmt.Fprint(cmd.OutOrStdout(), evt.Content)
		case stream.KindCompleted:
			fmt.Fprintln(cmd.OutOrStdout())
			noticeColor.Fprintln(cmd.ErrOrStderr(), "response complete")
		case stream.KindFailed:
			e := evt
			failed = &e
		case stream.KindUnknown:
			logging.Debug().RawJSON("raw", evt.Raw).Msg("unrecognized stream event")
		}
	}

	if ctx.Err() != nil {
		warnColor.Fprintln(cmd.ErrOrStderr(), "interrupted")
		if cancelOnInterrupt {
			cancelCtx, cancel := context.WithTimeout(context.Background(), cancelTimeout)
			defer cancel()
			if cancelled, err := api.CancelSession(cancelCtx, sessionID); err != nil {
				logging.Warn().Err(err).Str("session_id", sessionID).Msg("cancel after interrupt failed")
			} else if cancelled {
				noticeColor.Fprintf(cmd.ErrOrStderr(), "session cancelled: %s\n", sessionID)
			}
		}
		return nil
	}

	if failed != nil {
		return fmt.Errorf("session failed: %s", failed.Detail)
	}
	return nil
}
