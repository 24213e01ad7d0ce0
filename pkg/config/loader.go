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

package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📛 Config file names searched for, in order, in each directory
var configFileNames = []string{".preen.toml", ".preen.yaml", ".preen.yml", ".preen.hcl"}

// pyprojectFileName may embed the config under [tool.preen]
const pyprojectFileName = "pyproject.toml"

// 🎯 Load loads the configuration from an explicit file path
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	if filepath.Base(path) == pyprojectFileName {
		return parsePyproject(ctx, data)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// 🔍 Find locates and loads the configuration by walking up the directory
// chain from dir. Each directory is checked for a .preen.* file first,
// then for a pyproject.toml with a [tool.preen] table.
func Find(ctx context.Context, dir string) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Errorf("resolving search directory: %w", err)
	}

	for {
		for _, name := range configFileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				logger.Debug().Str("path", path).Msg("found config file")
				return Load(ctx, path)
			}
		}

		pyproject := filepath.Join(dir, pyprojectFileName)
		if _, err := os.Stat(pyproject); err == nil {
			logger.Debug().Str("path", pyproject).Msg("found pyproject.toml")
			return Load(ctx, pyproject)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, errors.Errorf(
				"no config file was found: provide a %s file, or a [tool.preen] entry in %s",
				configFileNames[0], pyprojectFileName)
		}
		dir = parent
	}
}

// 📦 parsePyproject extracts the [tool.preen] table from a pyproject.toml.
// A pyproject.toml without the table is a configuration error, matching
// the behavior for a missing config file.
func parsePyproject(ctx context.Context, data []byte) (*Config, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Errorf("parsing pyproject.toml: %w", err)
	}

	tool, ok := raw["tool"].(map[string]any)
	if !ok {
		return nil, errors.Errorf("pyproject.toml has no [tool.preen] table")
	}
	section, ok := tool["preen"].(map[string]any)
	if !ok {
		return nil, errors.Errorf("pyproject.toml has no [tool.preen] table")
	}

	cfg, err := BuildConfig(ctx, section)
	if err != nil {
		return nil, errors.Errorf("building config from pyproject.toml: %w", err)
	}

	return cfg, nil
}
