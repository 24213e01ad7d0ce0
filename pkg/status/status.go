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

// Package status renders user-facing progress for a run, mirroring every
// line into the structured log.
package status

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	toolIndent = 4  // spaces to indent tool result lines
	nameWidth  = 25 // width for the tool name
	kindWidth  = 10 // width for the tool kind
)

// 🏷️ Outcome is the reported result of one tool
type Outcome int

const (
	Succeeded Outcome = iota
	Failed
	Skipped
)

// 🛠️ ToolResult describes one tool execution for display
type ToolResult struct {
	Phase    string        // phase the tool ran in
	Name     string        // tool name
	Kind     string        // "formatter" or "linter"
	Outcome  Outcome       // result
	Duration time.Duration // wall time, zero when skipped
}

// 📊 RunSummary describes the overall run for the final banner
type RunSummary struct {
	Succeeded bool          // AND of all tool outcomes
	Aborted   bool          // a fail-fast abort cut the run short
	FailFast  bool          // effective fail-fast policy
	Failed    []string      // names of failed tools
	Duration  time.Duration // wall time of the whole run
	PipQuiet  bool          // whether pip output was suppressed
}

// 🔌 Reporter receives run progress events
type Reporter interface {
	PhaseStart(ctx context.Context, phase string, tools int)
	ToolDone(ctx context.Context, result ToolResult)
	RunDone(ctx context.Context, summary RunSummary)
}

// 📢 ConsoleReporter prints progress to a console writer and mirrors it
// into the zerolog logger carried by the context
type ConsoleReporter struct {
	console io.Writer
}

// 🏭 NewConsoleReporter creates a new ConsoleReporter
func NewConsoleReporter(console io.Writer) *ConsoleReporter {
	return &ConsoleReporter{console: console}
}

// 🚩 PhaseStart announces a phase
func (r *ConsoleReporter) PhaseStart(ctx context.Context, phase string, tools int) {
	if tools == 0 {
		zerolog.Ctx(ctx).Debug().Str("phase", phase).Msg("phase has no tools")
		return
	}

	pterm.Info.WithWriter(r.console).Printfln("%s (%d tools)", phase, tools)
	zerolog.Ctx(ctx).Info().Str("phase", phase).Int("tools", tools).Msg("running phase")
}

// 📝 ToolDone prints one tool result line
func (r *ConsoleReporter) ToolDone(ctx context.Context, result ToolResult) {
	var symbol string
	var status string
	switch result.Outcome {
	case Succeeded:
		symbol = color.GreenString("✓")
		status = fmt.Sprintf("ok in %s", result.Duration.Round(time.Millisecond))
	case Failed:
		symbol = color.RedString("✗")
		status = fmt.Sprintf("failed in %s", result.Duration.Round(time.Millisecond))
	case Skipped:
		symbol = color.HiBlackString("-")
		status = "skipped"
	}

	fmt.Fprintf(r.console, "%s%s %-*s %s %s\n",
		strings.Repeat(" ", toolIndent),
		symbol,
		nameWidth, result.Name,
		color.HiBlackString(fmt.Sprintf("%-*s", kindWidth, result.Kind)),
		status,
	)

	logger := zerolog.Ctx(ctx)
	event := logger.Info()
	if result.Outcome == Failed {
		event = logger.Error()
	}
	event.
		Str("phase", result.Phase).
		Str("tool", result.Name).
		Str("kind", result.Kind).
		Dur("duration", result.Duration).
		Bool("skipped", result.Outcome == Skipped).
		Msg("tool finished")
}

// 🏁 RunDone prints the final banner
func (r *ConsoleReporter) RunDone(ctx context.Context, summary RunSummary) {
	logger := zerolog.Ctx(ctx)

	if summary.Succeeded {
		pterm.Success.WithWriter(r.console).
			Printfln("ran all formatters and linters in %s with no errors, good job",
				summary.Duration.Round(time.Millisecond))
		logger.Info().Dur("duration", summary.Duration).Msg("run succeeded")

		if !summary.PipQuiet {
			pterm.Info.WithWriter(r.console).
				Println("hint: overwhelmed by pip's output? consider --quiet-pip")
		}
		return
	}

	if summary.Aborted {
		pterm.Error.WithWriter(r.console).
			Printfln("FAILED: %s failed, aborting the run (fail_fast is enabled)",
				strings.Join(summary.Failed, ", "))
	} else {
		pterm.Error.WithWriter(r.console).
			Printfln("FAILED: at least one tool failed (%s); enable fail_fast to stop at the first failure",
				strings.Join(summary.Failed, ", "))
	}

	logger.Error().
		Strs("failed", summary.Failed).
		Bool("aborted", summary.Aborted).
		Dur("duration", summary.Duration).
		Msg("run failed")
}

// 🔇 NopReporter discards all events; useful for tests and embedding
type NopReporter struct{}

func (NopReporter) PhaseStart(ctx context.Context, phase string, tools int) {}
func (NopReporter) ToolDone(ctx context.Context, result ToolResult)        {}
func (NopReporter) RunDone(ctx context.Context, summary RunSummary)        {}
