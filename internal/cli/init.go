package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/registry/internal/registry"
	"github.com/roach88/registry/internal/seed"
	"github.com/roach88/registry/internal/store"
)

// InitOptions holds flags for the init command.
type InitOptions struct {
	*RootOptions
	Reset    bool
	Seed     bool
	SeedFile string

	// explicitSeed is set when --seed was given on the command line.
	explicitSeed bool
}

// InitResult is the outcome of init.
type InitResult struct {
	DB          string           `json:"db"`
	Reset       bool             `json:"reset"`
	Seeded      bool             `json:"seeded"`
	SeedSkipped bool             `json:"seed_skipped,omitempty"`
	Counts      *seed.Counts     `json:"counts,omitempty"`
	LastNumbers map[string]int64 `json:"last_numbers"`
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the database schema and optionally load seed data",
		Long: `Create the registry schema in the configured database.

With --reset every registry table is dropped first. With --seed the
demonstration records (or --seed-file) are loaded in one transaction and
the number sequences are moved past the seeded numbers.

When seeding comes from the config rather than --seed, a database that
already holds persons or vehicles is not seeded again.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.explicitSeed = cmd.Flags().Changed("seed")
			if !opts.explicitSeed {
				opts.Seed = opts.Config.Seed
			}
			if !cmd.Flags().Changed("seed-file") && opts.Config.SeedFile != "" {
				opts.SeedFile = opts.Config.SeedFile
			}
			return runInit(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Reset, "reset", false, "drop all registry tables first")
	cmd.Flags().BoolVar(&opts.Seed, "seed", false, "load seed data (default from config)")
	cmd.Flags().StringVar(&opts.SeedFile, "seed-file", "", "CUE seed file to load instead of the built-in one")

	return cmd
}

func runInit(opts *InitOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	ctx := commandContext(cmd)

	// Load the seed before touching the database so a bad file changes nothing.
	var data *seed.Data
	if opts.Seed {
		var err error
		if opts.SeedFile != "" {
			data, err = seed.LoadFile(opts.SeedFile)
		} else {
			data, err = seed.Default()
		}
		if err != nil {
			return formatter.Abort(ErrCodeSeed, "failed to load seed", err)
		}
	}

	e, err := openEnv(cmd, opts.RootOptions)
	if err != nil {
		return formatter.Abort(ErrCodeDatabase, "failed to open database", err)
	}
	defer e.close()

	if opts.Reset {
		if err := e.store.Reset(ctx); err != nil {
			return formatter.Abort(ErrCodeDatabase, "failed to reset database", err)
		}
		e.log.Info("database reset", "path", opts.Config.DB)
	}

	result := InitResult{DB: opts.Config.DB, Reset: opts.Reset}
	if data != nil && !opts.explicitSeed {
		empty, err := e.store.Empty(ctx)
		if err != nil {
			return formatter.Abort(ErrCodeDatabase, "failed to inspect database", err)
		}
		if !empty {
			e.log.Info("database already holds records, seed skipped", "path", opts.Config.DB)
			result.SeedSkipped = true
			data = nil
		}
	}
	if data != nil {
		ids := opts.IDs
		if ids == nil {
			ids = registry.UUIDv7Generator{}
		}
		counts, err := seed.Apply(ctx, e.store, data, ids, e.log)
		if err != nil {
			return formatter.Abort(ErrCodeSeed, "failed to apply seed", err)
		}
		result.Seeded = true
		result.Counts = &counts
	}

	if result.LastNumbers, err = lastNumbers(ctx, e.store); err != nil {
		return formatter.Abort(ErrCodeDatabase, "failed to read sequences", err)
	}

	return formatter.Render(result, func(w io.Writer) {
		fmt.Fprintf(w, "Database ready: %s\n", result.DB)
		if result.Reset {
			fmt.Fprintln(w, "All tables were reset.")
		}
		if result.SeedSkipped {
			fmt.Fprintln(w, "Database already holds records; seed skipped.")
		}
		if c := result.Counts; c != nil {
			fmt.Fprintf(w, "Seeded %d persons, %d users, %d births, %d marriages, %d vehicles,\n",
				c.Persons, c.Users, c.Births, c.Marriages, c.Vehicles)
			fmt.Fprintf(w, "       %d registrations, %d tickets, %d payments, %d demerit notices\n",
				c.Registrations, c.Tickets, c.Payments, c.Demerits)
		}
		fmt.Fprint(w, "Last numbers issued:")
		for i, name := range store.SequenceNames() {
			sep := ","
			if i == 0 {
				sep = ""
			}
			fmt.Fprintf(w, "%s %s %d", sep, name, result.LastNumbers[name])
		}
		fmt.Fprintln(w)
	})
}

// lastNumbers reads the last value each sequence has issued.
func lastNumbers(ctx context.Context, st *store.Store) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, name := range store.SequenceNames() {
		n, err := st.CurrentNumber(ctx, name)
		if err != nil {
			return nil, err
		}
		out[name] = n
	}
	return out, nil
}
