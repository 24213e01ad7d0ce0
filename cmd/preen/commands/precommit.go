package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/preen/cmd/preen/opts"
	"github.com/walteh/preen/pkg/hook"
	"gitlab.com/tozd/go/errors"
)

// NewPreCommitCmd creates a new pre-commit command
func NewPreCommitCmd(ro *opts.RootOpts) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "pre-commit",
		Short: "Install a git pre-commit hook that runs preen format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "pre-commit").Logger().WithContext(ctx)

			cwd, err := os.Getwd()
			if err != nil {
				return errors.Errorf("getting working directory: %w", err)
			}

			path, err := hook.Install(ctx, cwd, force)
			if err != nil {
				return errors.Errorf("installing pre-commit hook: %w", err)
			}

			cmd.Printf("installed pre-commit hook at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing pre-commit hook")

	return cmd
}
