package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/registry/internal/registry"
	"github.com/roach88/registry/internal/report"
	"github.com/roach88/registry/internal/validate"
)

// FindOwnerOptions holds flags for the find-owner command.
type FindOwnerOptions struct {
	*RootOptions
	Query registry.OwnerQuery
}

// NewFindOwnerCommand creates the find-owner command.
func NewFindOwnerCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FindOwnerOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "find-owner",
		Short: "List vehicles and their current owners",
		Long: `List vehicles matching every given criterion with their current
registration and owner. Make, model and color match without regard to
case; the plate must match exactly. With no criteria every vehicle is listed.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFindOwner(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Query.Make, "make", "", "vehicle make")
	cmd.Flags().StringVar(&opts.Query.Model, "model", "", "vehicle model")
	cmd.Flags().IntVar(&opts.Query.Year, "year", 0, "model year")
	cmd.Flags().StringVar(&opts.Query.Color, "color", "", "vehicle color")
	cmd.Flags().StringVar(&opts.Query.Plate, "plate", "", "licence plate")

	return cmd
}

func runFindOwner(opts *FindOwnerOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if opts.Query.Year != 0 {
		if _, err := validate.Year(strconv.Itoa(opts.Query.Year)); err != nil {
			return formatter.Fail("find owner failed", err)
		}
	}

	e, err := openEnv(cmd, opts.RootOptions)
	if err != nil {
		return formatter.Abort(ErrCodeDatabase, "failed to open database", err)
	}
	defer e.close()

	matches, err := e.svc.FindOwner(commandContext(cmd), opts.Query)
	if err != nil {
		return formatter.Fail("find owner failed", err)
	}
	return formatter.Render(matches, func(w io.Writer) {
		if len(matches) == 0 {
			fmt.Fprintln(w, "No matching vehicles.")
			return
		}
		for _, m := range matches {
			report.OwnerDetail(w, m)
		}
	})
}
