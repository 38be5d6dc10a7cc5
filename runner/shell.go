// Copyright 2025 EngFlow Inc. All rights reserved.
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

package runner

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/execdoc/execdoc/harvest"
	"github.com/execdoc/execdoc/runner/termio"
)

// sentinelPrefix marks the end-of-command echo this runner injects after
// every command, used to tell where one command's output ends and the
// next begins.
const sentinelPrefix = "__execdoc_done_"

// DefaultShebang runs an interactive POSIX shell. The shell runner feeds
// commands to an already-running shell and expands its shebang with no
// tokens, so a %name% placeholder in a configured template reaches argv
// unexpanded.
var DefaultShebang = NewShebangTemplate("/bin/sh -i")

// ShellRunner drives a single long-lived POSIX shell process, spawned
// once per document and fed one example's Source at a time.
type ShellRunner struct {
	driver *ptyDriver
	rows   int
	cols   int
}

// NewShellRunner spawns shebang under a pty sized rows x cols.
func NewShellRunner(shebang ShebangTemplate, rows, cols int) (*ShellRunner, error) {
	argv, err := shebang.Expand(nil)
	if err != nil {
		return nil, fmt.Errorf("runner: expanding shebang %q: %w", shebang.Template, err)
	}
	sentinel := fmt.Sprintf("%s%d", sentinelPrefix, time.Now().UnixNano())
	driver, err := startPtyDriver(argv, rows, cols, sentinel)
	if err != nil {
		return nil, err
	}
	return &ShellRunner{driver: driver, rows: rows, cols: cols}, nil
}

func (r *ShellRunner) ID() string { return "shell" }

func (r *ShellRunner) Run(ctx context.Context, ex harvest.Example) (harvest.RunResult, error) {
	term, err := termio.New(ex.Options.String("term", "dumb"), r.rows, r.cols)
	if err != nil {
		return harvest.RunResult{}, fmt.Errorf("runner: %s: %w", ex.Name, err)
	}

	timeout := 5 * time.Second
	if raw := ex.Options.String("timeout", ""); raw != "" {
		// A Go duration ("10s") or a bare number of seconds ("10").
		if d, err := time.ParseDuration(raw); err == nil {
			timeout = d
		} else if secs, err := strconv.ParseFloat(raw, 64); err == nil {
			timeout = time.Duration(secs * float64(time.Second))
		}
	}
	var silence time.Duration
	if raw := ex.Options.String("stop-on-silence", ""); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			silence = d
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	actual, timedOut, err := r.driver.RunCommand(runCtx, ex.Source, term, silence)
	if err != nil {
		return harvest.RunResult{}, fmt.Errorf("runner: %s: %w", ex.Name, err)
	}

	result := harvest.RunResult{Actual: actual, Timeout: timedOut}
	switch {
	case timedOut:
		result.Matched = false
	case ex.Expected == nil:
		result.Matched = true
	default:
		ok, captures, err := ex.Expected.Match(actual)
		if err != nil {
			return harvest.RunResult{}, fmt.Errorf("runner: %s: matching output: %w", ex.Name, err)
		}
		result.Matched = ok
		result.Captures = captures
	}
	return result, nil
}

// Cancel interrupts the shell after a timed-out Run and attempts to
// recover it to its prompt, per the Runner interface's cancel(example,
// options) contract. ex is currently unused: the shell runner's recovery
// protocol doesn't depend on which example timed out, but the parameter is
// kept so a future language runner can key its interrupt strategy off it.
func (r *ShellRunner) Cancel(ctx context.Context, ex harvest.Example) bool {
	return r.driver.Cancel(ctx) == nil
}

func (r *ShellRunner) Close() error { return r.driver.Close() }
