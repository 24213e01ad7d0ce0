// Package tool performs the install-then-run sequence for one configured
// formatter or linter.
package tool

import (
	"os"
	"os/exec"
)

// 🤫 Quiet is the per-run output suppression policy: the two flags
// independently silence tool commands and pip invocations. Constructed
// once per run from CLI flags, immutable afterwards.
type Quiet struct {
	Commands bool
	Pip      bool
}

// pythonEnvVar overrides interpreter resolution when set
const pythonEnvVar = "PREEN_PYTHON"

// 🐍 ResolvePython returns the interpreter path substituted for {pyexe}.
// PREEN_PYTHON wins, then the first of python3/python found on PATH. The
// literal fallback keeps rendering deterministic even when no interpreter
// is installed; the run then fails at spawn time with a useful log.
func ResolvePython() string {
	if override := os.Getenv(pythonEnvVar); override != "" {
		return override
	}
	for _, name := range []string{"python3", "python"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return "python3"
}
