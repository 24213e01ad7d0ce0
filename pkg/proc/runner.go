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

// Package proc executes tokenized commands as child processes.
package proc

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/rs/zerolog"
)

// 🔌 Runner executes an argument vector as a child process and reports
// whether it exited successfully. Failures are never fatal to the caller;
// escalation is the caller's decision.
type Runner interface {
	Run(ctx context.Context, argv []string, quiet bool) bool
}

// 🏃 ExecRunner runs commands on the local host via os/exec. The command
// is executed directly, never through a shell, so rendered template
// content cannot inject shell syntax.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// 🏃 Run blocks until the child exits. Success means exit code 0. When
// quiet, the child's stdout and stderr are discarded (not captured);
// otherwise they are passed through to the parent's streams live.
func (r *ExecRunner) Run(ctx context.Context, argv []string, quiet bool) bool {
	logger := zerolog.Ctx(ctx)

	if len(argv) == 0 {
		logger.Error().Msg("refusing to run an empty argument vector")
		return false
	}

	logger.Info().Strs("argv", argv).Msg("running command")

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if !quiet {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}
	// quiet: leave Stdout/Stderr nil so the child writes to /dev/null

	err := cmd.Run()
	if err == nil {
		logger.Info().Strs("argv", argv).Msg("command succeeded")
		return true
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		logger.Error().
			Strs("argv", argv).
			Int("exit_code", exitErr.ExitCode()).
			Msg("command returned non-zero exit status")
		return false
	}

	// The process never started. The usual suspects are a missing
	// executable, a wrong working directory, or missing required
	// arguments for the launcher itself.
	logger.Error().
		Strs("argv", argv).
		Err(err).
		Msg("command could not be started (is the executable installed and on PATH? " +
			"is the working directory right? are required arguments missing?)")
	return false
}
