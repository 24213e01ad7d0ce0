package render

import (
	"runtime"
	"strings"
	"unicode"

	"github.com/google/shlex"
	"gitlab.com/tozd/go/errors"
)

// ✂️ Split tokenizes a rendered command into an argument vector. On
// POSIX hosts it applies POSIX quoting rules; on Windows it uses a
// non-POSIX mode where quote characters group words but are kept in the
// token, matching how command lines are conventionally split there.
func Split(command string) ([]string, error) {
	if runtime.GOOS == "windows" {
		return splitNonPOSIX(command)
	}

	args, err := shlex.Split(command)
	if err != nil {
		return nil, errors.Errorf("tokenizing: %w", err)
	}
	return args, nil
}

// splitNonPOSIX splits on whitespace while treating double-quoted spans
// as part of the surrounding word. Quote characters are retained.
func splitNonPOSIX(command string) ([]string, error) {
	var args []string
	var current strings.Builder
	inQuote := false

	for _, r := range command {
		switch {
		case r == '"':
			inQuote = !inQuote
			current.WriteRune(r)
		case unicode.IsSpace(r) && !inQuote:
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}

	if inQuote {
		return nil, errors.Errorf("unbalanced quote in command %q", command)
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}

	return args, nil
}
