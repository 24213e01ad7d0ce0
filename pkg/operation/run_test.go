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

package operation

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/preen/pkg/config"
	"github.com/walteh/preen/pkg/status"
)

// 🔧 scriptedExecutor records tool executions and fails the scripted ones
type scriptedExecutor struct {
	ran  []string        // "lint:<name>", "format:<name>", "check:<name>" in order
	fail map[string]bool // keyed the same way
}

func (e *scriptedExecutor) record(action, name string) bool {
	key := fmt.Sprintf("%s:%s", action, name)
	e.ran = append(e.ran, key)
	return !e.fail[key]
}

func (e *scriptedExecutor) Format(ctx context.Context, f config.Formatter, paths []string) bool {
	return e.record("format", f.Name)
}

func (e *scriptedExecutor) Check(ctx context.Context, f config.Formatter, paths []string) bool {
	return e.record("check", f.Name)
}

func (e *scriptedExecutor) Lint(ctx context.Context, l config.Linter, paths []string) bool {
	return e.record("lint", l.Name)
}

// 📊 recordingReporter captures reported tool results
type recordingReporter struct {
	status.NopReporter
	results []status.ToolResult
	summary *status.RunSummary
}

func (r *recordingReporter) ToolDone(ctx context.Context, result status.ToolResult) {
	r.results = append(r.results, result)
}

func (r *recordingReporter) RunDone(ctx context.Context, summary status.RunSummary) {
	r.summary = &summary
}

func boolPtr(b bool) *bool { return &b }

// testConfig is one first linter, two formatters, two other linters
func testConfig(failFast bool) *config.Config {
	return &config.Config{
		Formatters: []config.Formatter{
			{Name: "black", FormatCommand: "black {path}", CheckCommand: "black --check {path}"},
			{Name: "isort", FormatCommand: "isort {path}"},
		},
		Linters: []config.Linter{
			{Name: "pyupgrade", Command: "pyupgrade {path}", RunFirst: true},
			{Name: "ruff", Command: "ruff check {path}"},
			{Name: "mypy", Command: "mypy {path}"},
		},
		FailFast: boolPtr(failFast),
	}
}

func newTestOperator(t *testing.T, cfg *config.Config, executor Executor, reporter status.Reporter, only ...string) Operator {
	t.Helper()
	op, err := New(Options{
		Config:   cfg,
		Executor: executor,
		Reporter: reporter,
		Paths:    []string{"."},
		Only:     only,
	})
	require.NoError(t, err, "creating operator should succeed")
	return op
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		opts        Options
		wantErr     bool
		errContains string
	}{
		{
			name:        "missing_config",
			opts:        Options{Executor: &scriptedExecutor{}},
			wantErr:     true,
			errContains: "config is required",
		},
		{
			name:        "missing_executor",
			opts:        Options{Config: &config.Config{}},
			wantErr:     true,
			errContains: "executor is required",
		},
		{
			name: "reporter_is_optional",
			opts: Options{Config: &config.Config{}, Executor: &scriptedExecutor{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := New(tt.opts)
			if tt.wantErr {
				require.Error(t, err, "New should fail")
				assert.Contains(t, err.Error(), tt.errContains, "error should mention the missing option")
				return
			}
			require.NoError(t, err, "New should succeed")
			assert.NotNil(t, op, "operator should not be nil")
		})
	}
}

func TestOperator_PhaseOrder(t *testing.T) {
	executor := &scriptedExecutor{}
	op := newTestOperator(t, testConfig(true), executor, nil)

	require.NoError(t, op.Format(context.Background()), "run should succeed")
	assert.Equal(t, []string{
		"lint:pyupgrade",
		"format:black",
		"format:isort",
		"lint:ruff",
		"lint:mypy",
	}, executor.ran, "tools should run first linters, formatters, other linters, in list order")
}

func TestOperator_TaskSelectsFormatterFlow(t *testing.T) {
	executor := &scriptedExecutor{}
	op := newTestOperator(t, testConfig(true), executor, nil)

	require.NoError(t, op.Check(context.Background()), "check run should succeed")
	assert.Contains(t, executor.ran, "check:black", "check task should use the check flow")
	assert.NotContains(t, executor.ran, "format:black", "check task should never format")

	executor.ran = nil
	require.NoError(t, op.Format(context.Background()), "format run should succeed")
	assert.Contains(t, executor.ran, "format:black", "format task should use the format flow")
	assert.NotContains(t, executor.ran, "check:black", "format task should never check")
}

func TestOperator_FailFastAbortsAtFirstFailure(t *testing.T) {
	tests := []struct {
		name    string
		fail    string
		wantRan []string
		wantErr string
	}{
		{
			name:    "failure_in_first_linter_phase",
			fail:    "lint:pyupgrade",
			wantRan: []string{"lint:pyupgrade"},
			wantErr: "pyupgrade",
		},
		{
			name:    "failure_in_formatter_phase",
			fail:    "format:black",
			wantRan: []string{"lint:pyupgrade", "format:black"},
			wantErr: "black",
		},
		{
			name:    "failure_in_other_linter_phase",
			fail:    "lint:ruff",
			wantRan: []string{"lint:pyupgrade", "format:black", "format:isort", "lint:ruff"},
			wantErr: "ruff",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executor := &scriptedExecutor{fail: map[string]bool{tt.fail: true}}
			reporter := &recordingReporter{}
			op := newTestOperator(t, testConfig(true), executor, reporter)

			err := op.Format(context.Background())
			require.Error(t, err, "run should fail")
			assert.Contains(t, err.Error(), tt.wantErr, "error should name the failed tool")
			assert.Equal(t, tt.wantRan, executor.ran, "nothing after the failure should run")

			require.NotNil(t, reporter.summary, "a summary should always be reported")
			assert.True(t, reporter.summary.Aborted, "summary should record the abort")
			assert.False(t, reporter.summary.Succeeded, "summary should record the failure")
		})
	}
}

func TestOperator_CollectAllRunsEverything(t *testing.T) {
	executor := &scriptedExecutor{fail: map[string]bool{
		"lint:pyupgrade": true,
		"lint:mypy":      true,
	}}
	reporter := &recordingReporter{}
	op := newTestOperator(t, testConfig(false), executor, reporter)

	err := op.Format(context.Background())
	require.Error(t, err, "run should fail when any tool failed")
	assert.Contains(t, err.Error(), "2 tools failed", "error should count the failures")

	assert.Equal(t, []string{
		"lint:pyupgrade",
		"format:black",
		"format:isort",
		"lint:ruff",
		"lint:mypy",
	}, executor.ran, "every tool should run exactly once despite failures")

	require.NotNil(t, reporter.summary, "a summary should be reported")
	assert.False(t, reporter.summary.Aborted, "collect-all never aborts")
	assert.Equal(t, []string{"pyupgrade", "mypy"}, reporter.summary.Failed, "summary should list the failed tools")
}

func TestOperator_CollectAllSucceedsWithoutFailures(t *testing.T) {
	executor := &scriptedExecutor{}
	op := newTestOperator(t, testConfig(false), executor, nil)

	assert.NoError(t, op.Format(context.Background()), "run should succeed when every tool succeeds")
}

func TestOperator_OnlySubsetSkipsOtherTools(t *testing.T) {
	executor := &scriptedExecutor{}
	reporter := &recordingReporter{}
	op := newTestOperator(t, testConfig(true), executor, reporter, "black", "ruff")

	require.NoError(t, op.Format(context.Background()), "run should succeed")
	assert.Equal(t, []string{"format:black", "lint:ruff"}, executor.ran,
		"only the requested tools should run")

	skipped := 0
	for _, result := range reporter.results {
		if result.Outcome == status.Skipped {
			skipped++
		}
	}
	assert.Equal(t, 3, skipped, "the other tools should be reported as skipped, not failed")
}

func TestOperator_SkippedToolsAreNotFailures(t *testing.T) {
	// pyupgrade would fail, but it is not in the subset, so the run passes.
	executor := &scriptedExecutor{fail: map[string]bool{"lint:pyupgrade": true}}
	op := newTestOperator(t, testConfig(true), executor, nil, "ruff")

	assert.NoError(t, op.Format(context.Background()), "skipped tools must not count as failures")
}

// End-to-end scenario: one first linter that passes, one formatter with
// no check command, one other linter that fails, fail_fast enabled.
func TestOperator_EndToEndScenario(t *testing.T) {
	cfg := &config.Config{
		Formatters: []config.Formatter{
			{Name: "black", FormatCommand: "black {path}"},
		},
		Linters: []config.Linter{
			{Name: "pyupgrade", Command: "pyupgrade {path}", RunFirst: true},
			{Name: "ruff", Command: "ruff check {path}"},
		},
	}

	t.Run("format_task_fails_after_other_linter", func(t *testing.T) {
		executor := &scriptedExecutor{fail: map[string]bool{"lint:ruff": true}}
		op := newTestOperator(t, cfg, executor, nil)

		err := op.Format(context.Background())
		require.Error(t, err, "the failing other-linter should fail the run")
		assert.Equal(t, []string{"lint:pyupgrade", "format:black", "lint:ruff"}, executor.ran,
			"the run should stop right after the failing linter")
	})

	t.Run("check_task_with_missing_check_command", func(t *testing.T) {
		// The executor's Check short-circuits to success for a formatter
		// without check_command; the scripted stand-in mirrors that.
		executor := &scriptedExecutor{fail: map[string]bool{"lint:ruff": true}}
		op := newTestOperator(t, cfg, executor, nil)

		err := op.Check(context.Background())
		require.Error(t, err, "the failing other-linter should still fail the check run")
		assert.Equal(t, []string{"lint:pyupgrade", "check:black", "lint:ruff"}, executor.ran,
			"check should run the formatter's check flow and stop at the failure")
	})
}
