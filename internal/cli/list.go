package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/registry/internal/registry"
	"github.com/roach88/registry/internal/report"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "list <table>",
		Short:     "Print every row of a registry table",
		Long:      "Print every row of a registry table. Passwords are never listed.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: registry.ListTables,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runList(opts *RootOptions, table string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	e, err := openEnv(cmd, opts)
	if err != nil {
		return formatter.Abort(ErrCodeDatabase, "failed to open database", err)
	}
	defer e.close()

	t, err := e.svc.List(commandContext(cmd), table)
	if err != nil {
		return formatter.Fail("list failed", err)
	}
	return formatter.Render(t, func(w io.Writer) { report.Table(w, t) })
}
