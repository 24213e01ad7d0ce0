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

package main

import (
	"context"
	"errors"
	"os"

	"github.com/walteh/preen/pkg/operation"
)

// Exit codes returned by the preen CLI
const (
	exitSuccess     = 0
	exitRunFailure  = 1 // a formatter or linter failed
	exitConfigError = 2 // configuration or usage error
)

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCmd()

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, operation.ErrRunFailed) {
			return exitRunFailure
		}
		return exitConfigError
	}

	return exitSuccess
}
