package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/registry/internal/registry"
	"github.com/roach88/registry/internal/store"
)

// env is what a command needs to run registry workflows.
type env struct {
	store *store.Store
	svc   *registry.Service
	log   *slog.Logger
}

// setupLogging configures slog on stderr: Info by default, Debug when
// verbose.
func setupLogging(cmd *cobra.Command, opts *RootOptions) *slog.Logger {
	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// openEnv opens the configured database and builds the service.
// The caller must call close.
func openEnv(cmd *cobra.Command, opts *RootOptions) (*env, error) {
	logger := setupLogging(cmd, opts)

	// Open database (create if not exists)
	logger.Debug("opening database", "path", opts.Config.DB)
	st, err := store.Open(opts.Config.DB)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	svcOpts := []registry.Option{registry.WithLogger(logger)}
	if opts.Clock != nil {
		svcOpts = append(svcOpts, registry.WithClock(opts.Clock))
	}
	if opts.IDs != nil {
		svcOpts = append(svcOpts, registry.WithIDGenerator(opts.IDs))
	}

	return &env{
		store: st,
		svc:   registry.New(st, svcOpts...),
		log:   logger,
	}, nil
}

func (e *env) close() {
	if err := e.store.Close(); err != nil {
		e.log.Error("error closing database", "error", err)
	}
}

// commandContext returns cmd's context, or a background context when the
// command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
