package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/preen/cmd/preen/opts"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <paths...>",
		Short: "Check code without modifying it",
		Long: `Check runs the configured tools against the given paths without
modifying anything. Formatters run their check_command (a formatter
without one passes by convention); linters run exactly as in format.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "check").Logger().WithContext(ctx)

			op, err := newOperator(ctx, ro, args)
			if err != nil {
				return err
			}

			return op.Check(ctx)
		},
	}

	return cmd
}
