// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/preen/cmd/preen/commands"
	"github.com/walteh/preen/cmd/preen/opts"
	"github.com/walteh/preen/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile    string
	verbose       bool
	quietCount    int
	quietCommands bool
	quietPip      bool
	only          []string
	exclude       []string
)

// newRootCmd builds the preen command tree
func newRootCmd() *cobra.Command {
	ro := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:           "preen",
		Short:         "Run your formatters and linters, in order, with one command",
		Long:          "Preen installs and runs a configured sequence of code formatters and linters against a set of paths.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose && quietCount > 0 {
				return errors.Errorf("cannot have both --verbose and --quiet")
			}

			logger := newLogger()
			cmd.SetContext(logger.WithContext(cmd.Context()))

			ro.ConfigFile = configFile
			ro.Quiet.Commands = quietCommands
			ro.Quiet.Pip = quietPip
			ro.Only = only
			ro.Exclude = exclude
			ro.Reporter = status.NewConsoleReporter(os.Stdout)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file to use; all other config files are ignored")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log more information")
	cmd.PersistentFlags().CountVarP(&quietCount, "quiet", "q", "log less information, can be repeated")
	cmd.PersistentFlags().BoolVar(&quietCommands, "quiet-commands", false, "don't let ran commands write to stdout and stderr")
	cmd.PersistentFlags().BoolVar(&quietPip, "quiet-pip", false, "don't let pip write to stdout and stderr")
	cmd.PersistentFlags().StringArrayVar(&only, "only", nil, "only run the named tools, can be repeated")
	cmd.PersistentFlags().StringArrayVar(&exclude, "exclude", nil, "drop target paths matching this glob, can be repeated")

	cmd.AddCommand(commands.NewFormatCmd(ro))
	cmd.AddCommand(commands.NewCheckCmd(ro))
	cmd.AddCommand(commands.NewPreCommitCmd(ro))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// newLogger builds the run logger from the verbosity flags. The level is
// decided here, once, and the logger travels by context from then on.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case verbose:
		level = zerolog.DebugLevel
	case quietCount == 1:
		level = zerolog.WarnLevel
	case quietCount == 2:
		level = zerolog.ErrorLevel
	case quietCount == 3:
		level = zerolog.FatalLevel
	case quietCount >= 4:
		level = zerolog.Disabled
	}

	return zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
}
