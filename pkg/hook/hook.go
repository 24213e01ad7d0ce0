// Package hook installs a git pre-commit hook that runs preen.
package hook

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// hookScript is the generated pre-commit hook. It formats the whole
// repository; a failed run blocks the commit.
const hookScript = `#!/bin/sh
# Generated by preen. Remove this file to uninstall the hook.
exec preen format .
`

// 🪝 Install writes .git/hooks/pre-commit in repoDir. An existing hook
// is not overwritten unless force is set.
func Install(ctx context.Context, repoDir string, force bool) (string, error) {
	logger := zerolog.Ctx(ctx)

	gitDir := filepath.Join(repoDir, ".git")
	info, err := os.Stat(gitDir)
	if err != nil || !info.IsDir() {
		return "", errors.Errorf("%s is not a git repository (no .git directory)", repoDir)
	}

	hooksDir := filepath.Join(gitDir, "hooks")
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return "", errors.Errorf("creating hooks directory: %w", err)
	}

	path := filepath.Join(hooksDir, "pre-commit")
	if _, err := os.Stat(path); err == nil && !force {
		return "", errors.Errorf("a pre-commit hook already exists at %s (use --force to overwrite)", path)
	}

	if err := os.WriteFile(path, []byte(hookScript), 0o755); err != nil {
		return "", errors.Errorf("writing hook script: %w", err)
	}

	logger.Info().Str("path", path).Msg("installed pre-commit hook")
	return path, nil
}
