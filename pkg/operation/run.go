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
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/preen/pkg/config"
	"github.com/walteh/preen/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🚨 ErrRunFailed marks errors caused by tool failures, as opposed to
// configuration problems. The CLI maps the two to different exit codes.
var ErrRunFailed = errors.Base("run failed")

// 🏷️ Phase names, in run order
const (
	PhaseFirstLinters = "first linters"
	PhaseFormatters   = "formatters"
	PhaseOtherLinters = "other linters"
)

// formatterTask selects which formatter sub-flow a run uses. Linter
// phases are identical for both tasks.
type formatterTask int

const (
	taskFormat formatterTask = iota
	taskCheck
)

// step is one tool execution within a phase
type step struct {
	name string
	kind string
	run  func(ctx context.Context) bool
}

// phase is an ordered group of steps
type phase struct {
	name  string
	steps []step
}

// 🎨 Format implements Operator.Format
func (o *operator) Format(ctx context.Context) error {
	return o.run(ctx, taskFormat)
}

// 🔍 Check implements Operator.Check
func (o *operator) Check(ctx context.Context) error {
	return o.run(ctx, taskCheck)
}

// 🏃 run executes the three phases strictly sequentially: no two child
// processes are ever active at once, so tool output never interleaves.
// Fail-fast aborts at the first failure; otherwise every tool runs and
// failures are collected.
func (o *operator) run(ctx context.Context, task formatterTask) error {
	logger := zerolog.Ctx(ctx)
	start := time.Now()

	failFast := o.config.FailFastEnabled()
	var failed []string
	aborted := false

	phases := []phase{
		{name: PhaseFirstLinters, steps: o.linterSteps(o.config.FirstLinters())},
		{name: PhaseFormatters, steps: o.formatterSteps(task)},
		{name: PhaseOtherLinters, steps: o.linterSteps(o.config.OtherLinters())},
	}

run:
	for _, ph := range phases {
		o.reporter.PhaseStart(ctx, ph.name, len(ph.steps))
		phaseStart := time.Now()

		for _, st := range ph.steps {
			if len(o.only) > 0 && !o.only[st.name] {
				logger.Debug().Str("tool", st.name).Msg("tool not in the requested subset, skipping")
				o.reporter.ToolDone(ctx, status.ToolResult{
					Phase:   ph.name,
					Name:    st.name,
					Kind:    st.kind,
					Outcome: status.Skipped,
				})
				continue
			}

			toolStart := time.Now()
			ok := st.run(ctx)
			duration := time.Since(toolStart)

			outcome := status.Succeeded
			if !ok {
				outcome = status.Failed
				failed = append(failed, st.name)
			}
			o.reporter.ToolDone(ctx, status.ToolResult{
				Phase:    ph.name,
				Name:     st.name,
				Kind:     st.kind,
				Outcome:  outcome,
				Duration: duration,
			})

			if !ok && failFast {
				aborted = true
				break run
			}
		}

		logger.Debug().
			Str("phase", ph.name).
			Dur("duration", time.Since(phaseStart)).
			Msg("phase finished")
	}

	o.reporter.RunDone(ctx, status.RunSummary{
		Succeeded: len(failed) == 0,
		Aborted:   aborted,
		FailFast:  failFast,
		Failed:    failed,
		Duration:  time.Since(start),
		PipQuiet:  o.quiet.Pip,
	})

	if len(failed) == 0 {
		return nil
	}
	if aborted {
		return errors.Errorf("%w: tool %s failed, run aborted", ErrRunFailed, failed[len(failed)-1])
	}
	return errors.Errorf("%w: %d tools failed: %s", ErrRunFailed, len(failed), strings.Join(failed, ", "))
}

// linterSteps builds the steps for one linter phase
func (o *operator) linterSteps(linters []config.Linter) []step {
	steps := make([]step, 0, len(linters))
	for _, l := range linters {
		steps = append(steps, step{
			name: l.Name,
			kind: "linter",
			run: func(ctx context.Context) bool {
				return o.executor.Lint(ctx, l, o.paths)
			},
		})
	}
	return steps
}

// formatterSteps builds the formatter phase for the given task
func (o *operator) formatterSteps(task formatterTask) []step {
	steps := make([]step, 0, len(o.config.Formatters))
	for _, f := range o.config.Formatters {
		run := func(ctx context.Context) bool {
			return o.executor.Format(ctx, f, o.paths)
		}
		if task == taskCheck {
			run = func(ctx context.Context) bool {
				return o.executor.Check(ctx, f, o.paths)
			}
		}
		steps = append(steps, step{name: f.Name, kind: "formatter", run: run})
	}
	return steps
}
