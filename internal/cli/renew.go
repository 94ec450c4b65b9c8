package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/registry/internal/report"
	"github.com/roach88/registry/internal/validate"
)

// NewRenewCommand creates the renew command.
func NewRenewCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "renew <regno>",
		Short: "Renew a vehicle registration for one year",
		Long: `Renew a vehicle registration.

A registration that has expired, or expires today, runs for one year from
today. A registration that is still valid is extended by one year from its
current expiry.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRenew(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runRenew(opts *RootOptions, arg string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	regno, err := validate.Number("registration number", arg)
	if err != nil {
		return formatter.Fail("renew failed", err)
	}

	e, err := openEnv(cmd, opts)
	if err != nil {
		return formatter.Abort(ErrCodeDatabase, "failed to open database", err)
	}
	defer e.close()

	r, err := e.svc.RenewRegistration(commandContext(cmd), regno)
	if err != nil {
		return formatter.Fail("renew failed", err)
	}
	return formatter.Render(r, func(w io.Writer) { report.Renewal(w, r) })
}
