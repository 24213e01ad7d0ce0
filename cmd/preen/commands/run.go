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

// Package commands implements the preen subcommands.
package commands

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/preen/cmd/preen/opts"
	"github.com/walteh/preen/pkg/config"
	"github.com/walteh/preen/pkg/operation"
	"github.com/walteh/preen/pkg/proc"
	"github.com/walteh/preen/pkg/tool"
	"gitlab.com/tozd/go/errors"
)

// newOperator loads the config and assembles the full run stack
func newOperator(ctx context.Context, ro *opts.RootOpts, paths []string) (operation.Operator, error) {
	cfg, err := loadConfig(ctx, ro)
	if err != nil {
		return nil, err
	}

	paths, err = filterPaths(ctx, paths, ro.Exclude)
	if err != nil {
		return nil, err
	}

	executor := tool.NewExecutor(proc.NewExecRunner(), tool.ResolvePython(), ro.Quiet)

	op, err := operation.New(operation.Options{
		Config:   cfg,
		Executor: executor,
		Reporter: ro.Reporter,
		Paths:    paths,
		Only:     ro.Only,
		Quiet:    ro.Quiet,
	})
	if err != nil {
		return nil, errors.Errorf("creating operator: %w", err)
	}

	return op, nil
}

// loadConfig uses the explicit config file when given, otherwise
// searches from the working directory upwards
func loadConfig(ctx context.Context, ro *opts.RootOpts) (*config.Config, error) {
	if ro.ConfigFile != "" {
		cfg, err := config.Load(ctx, ro.ConfigFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Errorf("getting working directory: %w", err)
	}

	cfg, err := config.Find(ctx, cwd)
	if err != nil {
		return nil, errors.Errorf("finding config: %w", err)
	}
	return cfg, nil
}

// filterPaths drops the target paths matching any exclude glob
func filterPaths(ctx context.Context, paths, excludes []string) ([]string, error) {
	if len(excludes) == 0 {
		return paths, nil
	}

	logger := zerolog.Ctx(ctx)

	var kept []string
	for _, path := range paths {
		excluded := false
		for _, pattern := range excludes {
			match, err := doublestar.Match(pattern, filepath.ToSlash(path))
			if err != nil {
				return nil, errors.Errorf("invalid exclude pattern %q: %w", pattern, err)
			}
			if match {
				excluded = true
				break
			}
		}
		if excluded {
			logger.Debug().Str("path", path).Msg("path excluded")
			continue
		}
		kept = append(kept, path)
	}

	return kept, nil
}
