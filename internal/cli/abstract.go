package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/registry/internal/domain"
	"github.com/roach88/registry/internal/report"
	"github.com/roach88/registry/internal/validate"
)

// AbstractOptions holds flags for the abstract command.
type AbstractOptions struct {
	*RootOptions
	Detailed bool
}

// NewAbstractCommand creates the abstract command.
func NewAbstractCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AbstractOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "abstract <first> <last>",
		Short: "Print a driver abstract",
		Long: `Print a driver's ticket and demerit record.

The name is matched without regard to case. When several persons share the
name, use the interactive session to choose between them.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAbstract(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include every ticket, newest first")

	return cmd
}

func runAbstract(opts *AbstractOptions, first, last string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	name, err := validate.NamePair("driver's", first, last)
	if err != nil {
		return formatter.Fail("abstract failed", err)
	}

	e, err := openEnv(cmd, opts.RootOptions)
	if err != nil {
		return formatter.Abort(ErrCodeDatabase, "failed to open database", err)
	}
	defer e.close()

	a, err := e.svc.DriverAbstract(commandContext(cmd), name, opts.Detailed, noPrompt{})
	if err != nil {
		return formatter.Fail("abstract failed", err)
	}
	return formatter.Render(a, func(w io.Writer) { report.Abstract(w, a) })
}

// noPrompt is the PersonSource for one-shot commands, which cannot ask
// the operator anything.
type noPrompt struct{}

func (noPrompt) PersonDetails(_ context.Context, name domain.NamePair) (domain.PersonDetails, error) {
	return domain.PersonDetails{}, domain.NewNotFoundError("person", name.String())
}

func (noPrompt) ChoosePerson(_ context.Context, name domain.NamePair, _ []domain.Person) (domain.Person, error) {
	return domain.Person{}, domain.NewValidationError("name",
		fmt.Sprintf("several persons are named %s; use the interactive session to choose", name))
}
