package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/preen/cmd/preen/opts"
)

// NewFormatCmd creates a new format command
func NewFormatCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format <paths...>",
		Short: "Format code with the configured formatters",
		Long: `Format runs the configured tools against the given paths.
It will:
1. Run the linters marked run_first
2. Run each formatter's format_command, mutating files in place
3. Run the remaining linters`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "format").Logger().WithContext(ctx)

			op, err := newOperator(ctx, ro, args)
			if err != nil {
				return err
			}

			return op.Format(ctx)
		},
	}

	return cmd
}
