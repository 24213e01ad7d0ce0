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

package tool

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/preen/pkg/proc"
	"github.com/walteh/preen/pkg/render"
)

// installTemplate is the pip upgrade-install command. It is itself a
// command template and goes through the same renderer as tool commands.
const installTemplate = "{pyexe} -m pip install -U {packages}"

// 📦 Installer installs a tool's required packages via pip
type Installer struct {
	runner   proc.Runner
	pyExe    string
	quietPip bool
}

// 🏭 NewInstaller creates a new Installer
func NewInstaller(runner proc.Runner, pyExe string, quietPip bool) *Installer {
	return &Installer{
		runner:   runner,
		pyExe:    pyExe,
		quietPip: quietPip,
	}
}

// 📦 Install installs packages, returning whether pip succeeded. A
// failed install is reported, never raised; the caller decides whether
// to run the tool anyway. An empty package list is a no-op success,
// since pip exits non-zero when given nothing to install.
func (i *Installer) Install(ctx context.Context, packages []string) bool {
	logger := zerolog.Ctx(ctx)

	if len(packages) == 0 {
		logger.Debug().Msg("no packages to install, skipping pip")
		return true
	}

	logger.Info().Strs("packages", packages).Msg("installing packages")

	argv, err := render.RenderArgs(installTemplate, render.Context{
		PyExe:    i.pyExe,
		Packages: packages,
	})
	if err != nil {
		logger.Error().Err(err).Msg("rendering pip install command")
		return false
	}

	return i.runner.Run(ctx, argv, i.quietPip)
}
