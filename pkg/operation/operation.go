// Package operation orchestrates a full formatting or checking run.
package operation

import (
	"context"

	"github.com/walteh/preen/pkg/config"
	"github.com/walteh/preen/pkg/status"
	"github.com/walteh/preen/pkg/tool"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operator defines the two top-level run operations. Format mutates
// the code via each formatter's format_command; Check verifies it via
// check_command. Linter behavior is identical in both.
type Operator interface {
	// Format runs first linters, formatters (format_command), then other linters
	Format(ctx context.Context) error
	// Check runs first linters, formatters (check_command), then other linters
	Check(ctx context.Context) error
}

// 🔌 Executor runs a single tool's install-then-run sequence. It is the
// seam between the orchestrator and the subprocess layer.
type Executor interface {
	Format(ctx context.Context, f config.Formatter, paths []string) bool
	Check(ctx context.Context, f config.Formatter, paths []string) bool
	Lint(ctx context.Context, l config.Linter, paths []string) bool
}

// 🔧 Options contains configuration for the operator
type Options struct {
	// Config is the validated tool configuration
	Config *config.Config
	// Executor runs individual tools
	Executor Executor
	// Reporter receives progress events (optional, defaults to none)
	Reporter status.Reporter
	// Paths are the target paths substituted for {path}
	Paths []string
	// Only restricts execution to the named tools; empty means all
	Only []string
	// Quiet is the output suppression policy, used for the summary hint
	Quiet tool.Quiet
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (Operator, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Executor == nil {
		return nil, errors.Errorf("executor is required")
	}
	if opts.Reporter == nil {
		opts.Reporter = status.NopReporter{}
	}

	only := make(map[string]bool, len(opts.Only))
	for _, name := range opts.Only {
		only[name] = true
	}

	return &operator{
		config:   opts.Config,
		executor: opts.Executor,
		reporter: opts.Reporter,
		paths:    opts.Paths,
		only:     only,
		quiet:    opts.Quiet,
	}, nil
}

// 🎮 operator implements the Operator interface
type operator struct {
	config   *config.Config
	executor Executor
	reporter status.Reporter
	paths    []string
	only     map[string]bool
	quiet    tool.Quiet
}

// Format and Check are implemented in run.go
