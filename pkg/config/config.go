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
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🎨 Formatter describes one external code formatter
type Formatter struct {
	Name                 string   `yaml:"name,omitempty" hcl:"name,optional"`
	Packages             []string `yaml:"packages" hcl:"packages,optional"`
	FormatCommand        string   `yaml:"format_command" hcl:"format_command"`
	CheckCommand         string   `yaml:"check_command,omitempty" hcl:"check_command,optional"`
	AllowNonzeroOnFormat bool     `yaml:"allow_nonzero_on_format,omitempty" hcl:"allow_nonzero_on_format,optional"`
}

// 🔍 Linter describes one external code linter
type Linter struct {
	Name     string   `yaml:"name,omitempty" hcl:"name,optional"`
	Packages []string `yaml:"packages" hcl:"packages,optional"`
	Command  string   `yaml:"command" hcl:"command"`
	RunFirst bool     `yaml:"run_first,omitempty" hcl:"run_first,optional"`
}

// 📚 Config represents the complete tool configuration for a run.
// Slice order is run order; FailFast defaults to true.
type Config struct {
	Formatters []Formatter `yaml:"formatters,omitempty"`
	Linters    []Linter    `yaml:"linters,omitempty"`
	FailFast   *bool       `yaml:"fail_fast,omitempty"`
}

// 🚦 FailFastEnabled reports the effective fail-fast policy (default true)
func (cfg *Config) FailFastEnabled() bool {
	if cfg.FailFast == nil {
		return true
	}
	return *cfg.FailFast
}

// 🥇 FirstLinters returns the linters with run_first set, preserving order
func (cfg *Config) FirstLinters() []Linter {
	var out []Linter
	for _, l := range cfg.Linters {
		if l.RunFirst {
			out = append(out, l)
		}
	}
	return out
}

// 🥈 OtherLinters returns the linters without run_first, preserving order
func (cfg *Config) OtherLinters() []Linter {
	var out []Linter
	for _, l := range cfg.Linters {
		if !l.RunFirst {
			out = append(out, l)
		}
	}
	return out
}

// 🔍 Validate checks the configuration and applies name defaulting.
// It runs exactly once, when the config is loaded; definitions are
// immutable afterwards.
func (cfg *Config) Validate(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	unnamed := 0
	defaultName := func(name string, packages []string) string {
		if name != "" {
			return name
		}
		if len(packages) > 0 {
			return packages[0]
		}
		unnamed++
		generated := fmt.Sprintf("tool-%d", unnamed)
		logger.Warn().
			Str("name", generated).
			Msg("tool has no name and no packages, generated a name for it")
		return generated
	}

	for i := range cfg.Formatters {
		f := &cfg.Formatters[i]
		if strings.TrimSpace(f.FormatCommand) == "" {
			return errors.Errorf("formatter %d: format_command is required", i)
		}
		f.Name = defaultName(f.Name, f.Packages)
	}

	for i := range cfg.Linters {
		l := &cfg.Linters[i]
		if strings.TrimSpace(l.Command) == "" {
			return errors.Errorf("linter %d: command is required", i)
		}
		l.Name = defaultName(l.Name, l.Packages)
	}

	return nil
}

// 📝 String returns a short description of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%d formatters, %d linters, fail_fast=%v",
		len(cfg.Formatters), len(cfg.Linters), cfg.FailFastEnabled())
}
