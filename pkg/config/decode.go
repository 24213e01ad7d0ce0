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

	"gitlab.com/tozd/go/errors"
)

// 🔑 Allowed keys per entry kind. An unknown key anywhere is a hard
// configuration error, never silently ignored.
var (
	topLevelKeys  = []string{"formatters", "linters", "fail_fast"}
	formatterKeys = []string{"name", "packages", "format_command", "check_command", "allow_nonzero_on_format"}
	linterKeys    = []string{"name", "packages", "command", "run_first"}
)

// 🛡️ assertKeys checks that every key of entry is in allowed
func assertKeys(entry map[string]any, allowed []string, where string) error {
	for key := range entry {
		found := false
		for _, k := range allowed {
			if key == k {
				found = true
				break
			}
		}
		if !found {
			return errors.Errorf("%s: unknown key %q (allowed: %v)", where, key, allowed)
		}
	}
	return nil
}

// 🏗️ BuildConfig converts a raw decoded document into a validated Config.
// TOML and YAML parsers both funnel through here so unknown-key handling
// is identical regardless of the file format.
func BuildConfig(ctx context.Context, raw map[string]any) (*Config, error) {
	if err := assertKeys(raw, topLevelKeys, "config"); err != nil {
		return nil, err
	}

	cfg := &Config{}

	if v, ok := raw["fail_fast"]; ok {
		b, err := asBool(v, "fail_fast")
		if err != nil {
			return nil, err
		}
		cfg.FailFast = &b
	}

	entries, err := asEntryList(raw["formatters"], "formatters")
	if err != nil {
		return nil, err
	}
	for i, entry := range entries {
		f, err := buildFormatter(entry, i)
		if err != nil {
			return nil, err
		}
		cfg.Formatters = append(cfg.Formatters, f)
	}

	entries, err = asEntryList(raw["linters"], "linters")
	if err != nil {
		return nil, err
	}
	for i, entry := range entries {
		l, err := buildLinter(entry, i)
		if err != nil {
			return nil, err
		}
		cfg.Linters = append(cfg.Linters, l)
	}

	if err := cfg.Validate(ctx); err != nil {
		return nil, err
	}

	return cfg, nil
}

// 🎨 buildFormatter builds one Formatter from a raw entry
func buildFormatter(entry map[string]any, index int) (Formatter, error) {
	where := fmt.Sprintf("formatter %d", index)
	if err := assertKeys(entry, formatterKeys, where); err != nil {
		return Formatter{}, err
	}

	var f Formatter
	var err error
	if f.Name, err = optString(entry, "name", where); err != nil {
		return Formatter{}, err
	}
	if f.Packages, err = optStringSlice(entry, "packages", where); err != nil {
		return Formatter{}, err
	}
	if f.FormatCommand, err = optString(entry, "format_command", where); err != nil {
		return Formatter{}, err
	}
	if f.CheckCommand, err = optString(entry, "check_command", where); err != nil {
		return Formatter{}, err
	}
	if f.AllowNonzeroOnFormat, err = optBool(entry, "allow_nonzero_on_format", where); err != nil {
		return Formatter{}, err
	}
	return f, nil
}

// 🔍 buildLinter builds one Linter from a raw entry
func buildLinter(entry map[string]any, index int) (Linter, error) {
	where := fmt.Sprintf("linter %d", index)
	if err := assertKeys(entry, linterKeys, where); err != nil {
		return Linter{}, err
	}

	var l Linter
	var err error
	if l.Name, err = optString(entry, "name", where); err != nil {
		return Linter{}, err
	}
	if l.Packages, err = optStringSlice(entry, "packages", where); err != nil {
		return Linter{}, err
	}
	if l.Command, err = optString(entry, "command", where); err != nil {
		return Linter{}, err
	}
	if l.RunFirst, err = optBool(entry, "run_first", where); err != nil {
		return Linter{}, err
	}
	return l, nil
}

// asEntryList normalizes the shapes the TOML and YAML decoders produce
// for a list of tables ([]any or []map[string]any).
func asEntryList(v any, where string) ([]map[string]any, error) {
	if v == nil {
		return nil, nil
	}
	switch list := v.(type) {
	case []map[string]any:
		return list, nil
	case []any:
		out := make([]map[string]any, 0, len(list))
		for i, item := range list {
			entry, ok := item.(map[string]any)
			if !ok {
				return nil, errors.Errorf("%s[%d]: expected a table, got %T", where, i, item)
			}
			out = append(out, entry)
		}
		return out, nil
	default:
		return nil, errors.Errorf("%s: expected a list of tables, got %T", where, v)
	}
}

func asBool(v any, where string) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, errors.Errorf("%s: expected a bool, got %T", where, v)
	}
	return b, nil
}

func asString(v any, where string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.Errorf("%s: expected a string, got %T", where, v)
	}
	return s, nil
}

func optString(entry map[string]any, key, where string) (string, error) {
	v, ok := entry[key]
	if !ok {
		return "", nil
	}
	return asString(v, where+"."+key)
}

func optBool(entry map[string]any, key, where string) (bool, error) {
	v, ok := entry[key]
	if !ok {
		return false, nil
	}
	return asBool(v, where+"."+key)
}

func optStringSlice(entry map[string]any, key, where string) ([]string, error) {
	v, ok := entry[key]
	if !ok {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		if typed, isTyped := v.([]string); isTyped {
			return typed, nil
		}
		return nil, errors.Errorf("%s.%s: expected a list of strings, got %T", where, key, v)
	}
	out := make([]string, 0, len(list))
	for i, item := range list {
		s, err := asString(item, fmt.Sprintf("%s.%s[%d]", where, key, i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
