package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/registry/internal/clock"
	"github.com/roach88/registry/internal/config"
	"github.com/roach88/registry/internal/registry"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	DB         string
	ConfigPath string

	// Config is resolved before any subcommand runs: defaults, then the
	// config file, then the environment, then explicitly set flags.
	Config config.Config

	// Clock and IDs override the service defaults. Tests pin them.
	Clock clock.Clock
	IDs   registry.IDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the registry CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Civil-records and vehicle registry",
		Long: `A registry of persons, births, marriages, vehicles, registrations,
tickets, payments and demerit notices.

Agents register births and marriages, renew registrations, process bills
of sale and payments, and compile driver abstracts. Officers issue tickets
and look up car owners. Run "registry session" for the interactive menu.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return resolveConfig(cmd, opts)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", config.DefaultDB, "path to SQLite database")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")

	// Add subcommands
	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewSessionCommand(opts))
	cmd.AddCommand(NewRenewCommand(opts))
	cmd.AddCommand(NewAbstractCommand(opts))
	cmd.AddCommand(NewFindOwnerCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// resolveConfig layers explicitly set flags over the loaded config.
// Failures are reported as text: the format itself may be what is wrong.
func resolveConfig(cmd *cobra.Command, opts *RootOptions) error {
	report := &OutputFormatter{Format: "text", Writer: cmd.OutOrStdout()}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return report.Abort(ErrCodeConfig, "failed to load config", err)
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DB = opts.DB
	}
	if flags.Changed("format") {
		cfg.Format = opts.Format
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.Verbose
	}

	if !isValidFormat(cfg.Format) {
		err := fmt.Errorf("invalid format %q: must be one of %v", cfg.Format, ValidFormats)
		return report.Abort(ErrCodeConfig, "invalid config", err)
	}
	if err := cfg.Validate(); err != nil {
		return report.Abort(ErrCodeConfig, "invalid config", err)
	}

	opts.Config = cfg
	opts.Format = cfg.Format
	opts.Verbose = cfg.Verbose
	opts.DB = cfg.DB
	return nil
}

// formatter builds the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:  o.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: o.Verbose,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
