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

package tool

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/preen/pkg/config"
	"github.com/walteh/preen/pkg/proc"
	"github.com/walteh/preen/pkg/render"
)

// 🛠️ Executor drives one tool through its install-then-run sequence.
// Each call is independent; the only shared state is the read-only quiet
// policy and interpreter path.
type Executor struct {
	runner    proc.Runner
	installer *Installer
	pyExe     string
	quiet     Quiet
}

// 🏭 NewExecutor creates a new Executor
func NewExecutor(runner proc.Runner, pyExe string, quiet Quiet) *Executor {
	return &Executor{
		runner:    runner,
		installer: NewInstaller(runner, pyExe, quiet.Pip),
		pyExe:     pyExe,
		quiet:     quiet,
	}
}

// 🎨 Format installs the formatter's packages and runs format_command.
// An install failure aborts the tool: the format command is never run.
// A non-zero format exit is a failure unless allow_nonzero_on_format is
// set, because formatters are expected to rewrite files in place and
// still exit 0.
func (e *Executor) Format(ctx context.Context, f config.Formatter, paths []string) bool {
	logger := zerolog.Ctx(ctx).With().Str("formatter", f.Name).Logger()
	ctx = logger.WithContext(ctx)

	if !e.installer.Install(ctx, f.Packages) {
		logger.Error().
			Strs("packages", f.Packages).
			Msg("could not install the formatter's packages, see pip's output for more information")
		return false
	}

	ok := e.runCommand(ctx, f.FormatCommand, f.Packages, paths)
	if ok || f.AllowNonzeroOnFormat {
		logger.Info().Msg("formatter (format) succeeded")
		return true
	}

	logger.Error().
		Str("command", f.FormatCommand).
		Msg("formatter (format) failed: format_command is expected to modify the code in place " +
			"and return zero, unlike check_command; set allow_nonzero_on_format to allow this")
	return false
}

// 🔍 Check installs the formatter's packages and runs check_command.
// A formatter without a check_command short-circuits to success, and no
// install is attempted for it. Check semantics are strict: only exit
// code 0 passes, regardless of allow_nonzero_on_format.
func (e *Executor) Check(ctx context.Context, f config.Formatter, paths []string) bool {
	logger := zerolog.Ctx(ctx).With().Str("formatter", f.Name).Logger()
	ctx = logger.WithContext(ctx)

	if f.CheckCommand == "" {
		logger.Warn().Msg("formatter has no check_command, skipping")
		return true
	}

	if !e.installer.Install(ctx, f.Packages) {
		logger.Error().
			Strs("packages", f.Packages).
			Msg("could not install the formatter's packages, see pip's output for more information")
		return false
	}

	ok := e.runCommand(ctx, f.CheckCommand, f.Packages, paths)
	if ok {
		logger.Info().Msg("formatter (check) succeeded")
		return true
	}

	logger.Error().
		Str("command", f.CheckCommand).
		Msg("formatter (check) failed: check_command should return 0 when the code is up to standard")
	return false
}

// 🔍 Lint installs the linter's packages and runs its command. Unlike a
// formatter, a linter tolerates an install failure: the binary may
// already be present, so the lint command runs anyway and the install
// failure is only logged.
func (e *Executor) Lint(ctx context.Context, l config.Linter, paths []string) bool {
	logger := zerolog.Ctx(ctx).With().Str("linter", l.Name).Logger()
	ctx = logger.WithContext(ctx)

	if !e.installer.Install(ctx, l.Packages) {
		logger.Error().
			Strs("packages", l.Packages).
			Msg("could not install the linter's packages, running it anyway")
	}

	ok := e.runCommand(ctx, l.Command, l.Packages, paths)
	if ok {
		logger.Info().Msg("linter succeeded")
		return true
	}

	logger.Error().
		Str("command", l.Command).
		Msg("linting failed, see the linter's output for more information")
	return false
}

// runCommand renders a tool command template and executes it
func (e *Executor) runCommand(ctx context.Context, template string, packages, paths []string) bool {
	logger := zerolog.Ctx(ctx)

	argv, err := render.RenderArgs(template, render.Context{
		PyExe:    e.pyExe,
		Paths:    paths,
		Packages: packages,
	})
	if err != nil {
		logger.Error().Err(err).Str("template", template).Msg("rendering tool command")
		return false
	}

	return e.runner.Run(ctx, argv, e.quiet.Commands)
}
