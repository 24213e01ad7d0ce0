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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTOMLParser_Parse(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "full_config",
			content: `
fail_fast = false

[[formatters]]
packages = ["black"]
format_command = "{pyexe} -m black {path}"
check_command = "{pyexe} -m black --check {path}"

[[linters]]
name = "ruff"
packages = ["ruff"]
command = "{pyexe} -m ruff check {path}"
run_first = true
`,
			check: func(t *testing.T, cfg *Config) {
				require.Len(t, cfg.Formatters, 1, "should have one formatter")
				require.Len(t, cfg.Linters, 1, "should have one linter")
				assert.False(t, cfg.FailFastEnabled(), "fail_fast should be disabled")
				assert.Equal(t, "black", cfg.Formatters[0].Name, "name should default to first package")
				assert.Equal(t, "ruff", cfg.Linters[0].Name, "explicit name should win")
				assert.True(t, cfg.Linters[0].RunFirst, "run_first should be set")
			},
		},
		{
			name: "fail_fast_defaults_to_true",
			content: `
[[linters]]
packages = ["flake8"]
command = "{pyexe} -m flake8 {path}"
`,
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.FailFastEnabled(), "fail_fast should default to true")
			},
		},
		{
			name: "unknown_top_level_key",
			content: `
run_formatters = true
`,
			wantErr:     true,
			errContains: "unknown key",
		},
		{
			name: "unknown_formatter_key",
			content: `
[[formatters]]
packages = ["black"]
format_command = "{pyexe} -m black {path}"
run_first = true
`,
			wantErr:     true,
			errContains: "unknown key",
		},
		{
			name: "unknown_linter_key",
			content: `
[[linters]]
packages = ["ruff"]
command = "{pyexe} -m ruff check {path}"
check_command = "{pyexe} -m ruff check {path}"
`,
			wantErr:     true,
			errContains: "unknown key",
		},
		{
			name: "missing_format_command",
			content: `
[[formatters]]
packages = ["black"]
`,
			wantErr:     true,
			errContains: "format_command is required",
		},
		{
			name: "missing_linter_command",
			content: `
[[linters]]
packages = ["ruff"]
`,
			wantErr:     true,
			errContains: "command is required",
		},
		{
			name: "generated_name_for_empty_tool",
			content: `
[[linters]]
command = "ruff check {path}"
`,
			check: func(t *testing.T, cfg *Config) {
				require.Len(t, cfg.Linters, 1, "should have one linter")
				assert.Equal(t, "tool-1", cfg.Linters[0].Name, "name should be generated")
				assert.Empty(t, cfg.Linters[0].Packages, "packages may be empty")
			},
		},
		{
			name: "wrong_type_for_packages",
			content: `
[[linters]]
packages = "ruff"
command = "ruff check {path}"
`,
			wantErr:     true,
			errContains: "expected a list of strings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := &TOMLParser{}
			cfg, err := parser.Parse(context.Background(), []byte(tt.content))
			if tt.wantErr {
				require.Error(t, err, "parse should fail")
				assert.Contains(t, err.Error(), tt.errContains, "error should mention the cause")
				return
			}
			require.NoError(t, err, "parse should succeed")
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestYAMLParser_Parse(t *testing.T) {
	content := `
fail_fast: true
formatters:
  - packages: [black]
    format_command: "{pyexe} -m black {path}"
linters:
  - packages: [ruff]
    command: "{pyexe} -m ruff check {path}"
`
	parser := &YAMLParser{}
	cfg, err := parser.Parse(context.Background(), []byte(content))
	require.NoError(t, err, "parse should succeed")
	require.Len(t, cfg.Formatters, 1, "should have one formatter")
	require.Len(t, cfg.Linters, 1, "should have one linter")
	assert.True(t, cfg.FailFastEnabled(), "fail_fast should be enabled")

	_, err = parser.Parse(context.Background(), []byte("linters:\n  - command: x\n    bogus: y\n"))
	require.Error(t, err, "unknown keys should be rejected in YAML too")
	assert.Contains(t, err.Error(), "unknown key", "error should mention the unknown key")
}

func TestHCLParser_Parse(t *testing.T) {
	content := `
fail_fast = false

formatter {
  packages       = ["black"]
  format_command = "{pyexe} -m black {path}"
}

linter {
  packages  = ["ruff"]
  command   = "{pyexe} -m ruff check {path}"
  run_first = true
}
`
	parser := &HCLParser{}
	cfg, err := parser.Parse(context.Background(), []byte(content))
	require.NoError(t, err, "parse should succeed")
	require.Len(t, cfg.Formatters, 1, "should have one formatter")
	require.Len(t, cfg.Linters, 1, "should have one linter")
	assert.False(t, cfg.FailFastEnabled(), "fail_fast should be disabled")
	assert.Equal(t, "black", cfg.Formatters[0].Name, "name should default to first package")

	_, err = parser.Parse(context.Background(), []byte("linter {\n  command = \"x\"\n  bogus = true\n}\n"))
	require.Error(t, err, "unknown attributes should be rejected")
}

func TestGetParser(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     any
	}{
		{name: "toml_file", filename: ".preen.toml", want: &TOMLParser{}},
		{name: "yaml_file", filename: ".preen.yaml", want: &YAMLParser{}},
		{name: "yml_file", filename: "config.yml", want: &YAMLParser{}},
		{name: "hcl_file", filename: ".preen.hcl", want: &HCLParser{}},
		{name: "unknown_file", filename: "config.json", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got, "no parser should match")
				return
			}
			assert.IsType(t, tt.want, got, "parser type should match")
		})
	}
}

func TestConfig_LinterPartition(t *testing.T) {
	cfg := &Config{
		Linters: []Linter{
			{Name: "a", Command: "a", RunFirst: false},
			{Name: "b", Command: "b", RunFirst: true},
			{Name: "c", Command: "c", RunFirst: false},
			{Name: "d", Command: "d", RunFirst: true},
			{Name: "e", Command: "e", RunFirst: false},
		},
	}

	first := cfg.FirstLinters()
	other := cfg.OtherLinters()

	require.Len(t, first, 2, "two linters have run_first")
	require.Len(t, other, 3, "three linters do not")
	assert.Equal(t, "b", first[0].Name, "first group should preserve order")
	assert.Equal(t, "d", first[1].Name, "first group should preserve order")
	assert.Equal(t, "a", other[0].Name, "other group should preserve order")
	assert.Equal(t, "c", other[1].Name, "other group should preserve order")
	assert.Equal(t, "e", other[2].Name, "other group should preserve order")

	// The two groups together are a stable partition of the original list.
	assert.Len(t, append(first, other...), len(cfg.Linters), "partition should cover every linter")
}

func TestConfig_GeneratedNamesAreUnique(t *testing.T) {
	cfg := &Config{
		Linters: []Linter{
			{Command: "a"},
			{Command: "b"},
		},
	}
	require.NoError(t, cfg.Validate(context.Background()), "validate should succeed")
	assert.NotEqual(t, cfg.Linters[0].Name, cfg.Linters[1].Name, "generated names should be unique")
}
