package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/registry/internal/session"
)

// NewSessionCommand creates the session command.
func NewSessionCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Start the interactive operator menu",
		Long: `Start the interactive operator menu.

Reads one answer per line from stdin. Log in as an agent or an officer;
enter x at a menu to log out and n at the login prompt to quit.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(rootOpts, cmd)
		},
	}

	return cmd
}

func runSession(opts *RootOptions, cmd *cobra.Command) error {
	e, err := openEnv(cmd, opts)
	if err != nil {
		return err
	}
	defer e.close()

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan) // Prevent signal handler leak

	go func() {
		select {
		case sig := <-sigChan:
			e.log.Info("received signal, ending session", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	s := session.New(e.svc, cmd.InOrStdin(), cmd.OutOrStdout(), session.WithLogger(e.log))
	if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return WrapExitError(ExitFailure, "session error", err)
	}
	return nil
}
