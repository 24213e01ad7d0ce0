// Package render turns command templates into concrete argument vectors.
package render

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🧩 Context carries the values substituted into a command template
type Context struct {
	PyExe    string   // resolved interpreter path, replaces {pyexe}
	Paths    []string // target paths, space-joined, replace {path}
	Packages []string // package specifiers, space-joined, replace {packages}
}

// 🎨 Render substitutes the recognized placeholders into template by
// literal substring replacement. Replacement happens even inside larger
// tokens, and unrecognized placeholders are left verbatim; configs in the
// wild rely on both behaviors, so this must never grow into a real
// template engine.
func Render(template string, rc Context) string {
	out := strings.TrimSpace(template)
	out = strings.ReplaceAll(out, "{pyexe}", rc.PyExe)
	out = strings.ReplaceAll(out, "{path}", strings.Join(rc.Paths, " "))
	out = strings.ReplaceAll(out, "{packages}", strings.Join(rc.Packages, " "))
	return out
}

// ✂️ RenderArgs renders template and tokenizes the result into an
// argument vector using shell-word-splitting rules. The vector is meant
// to be executed directly, never through a shell.
func RenderArgs(template string, rc Context) ([]string, error) {
	rendered := Render(template, rc)

	args, err := Split(rendered)
	if err != nil {
		return nil, errors.Errorf("splitting command %q: %w", rendered, err)
	}
	if len(args) == 0 {
		return nil, errors.Errorf("command %q rendered to an empty argument vector", template)
	}

	return args, nil
}
