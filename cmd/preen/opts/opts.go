package opts

import (
	"github.com/walteh/preen/pkg/status"
	"github.com/walteh/preen/pkg/tool"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// ConfigFile is an explicit config path; empty means search for one
	ConfigFile string
	// Quiet is the per-run output suppression policy
	Quiet tool.Quiet
	// Only restricts execution to the named tools
	Only []string
	// Exclude drops target paths matching these glob patterns
	Exclude []string
	// Reporter receives run progress
	Reporter status.Reporter
}
