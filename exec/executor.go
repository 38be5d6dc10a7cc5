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

// Package exec drives a document's harvested Examples through their
// Runners and tallies the outcome, reusing one Runner per language across
// the whole document since a Runner owns one long-lived interpreter
// process.
package exec

import (
	"context"
	"fmt"

	"github.com/execdoc/execdoc/harvest"
)

// Outcome is one Example's execution result.
type Outcome struct {
	Example harvest.Example
	Result  harvest.RunResult
	// Err is set when the Runner's Run itself failed (I/O, match error), or
	// when the example was skipped because its language's Runner is broken,
	// as opposed to the example simply not matching its expected output,
	// which is recorded as Result.Matched == false. A Runner spawn failure
	// produces no Outcome; Run returns it as an error instead.
	Err error
}

// Passed reports whether this outcome should count as a pass.
func (o Outcome) Passed() bool { return o.Err == nil && !o.Result.Timeout && o.Result.Matched }

// Executor runs every Example of a document through a Registry, spawning
// at most one Runner per language and closing them all when Close is
// called.
type Executor struct {
	registry *harvest.Registry
	runners  map[string]harvest.Runner
}

// NewExecutor returns an Executor backed by registry.
func NewExecutor(registry *harvest.Registry) *Executor {
	return &Executor{registry: registry, runners: map[string]harvest.Runner{}}
}

// Run executes every example in order. A Runner spawn failure or an
// execution error (as opposed to a failed match) stops the run early and
// is returned alongside whatever outcomes were collected so far. A timeout
// triggers Runner.Cancel; if recovery fails the Runner is Broken and every
// remaining example of that language is skipped with a diagnostic rather
// than fed to a shell that can no longer be trusted (§7, broken-runner
// errors).
func (e *Executor) Run(ctx context.Context, examples []harvest.Example) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(examples))
	broken := map[string]bool{}
	for _, ex := range examples {
		if broken[ex.Language] {
			outcomes = append(outcomes, Outcome{
				Example: ex,
				Err:     fmt.Errorf("exec: %s: runner for %q is broken after a failed cancel, skipping", ex.Name, ex.Language),
			})
			continue
		}

		runner, err := e.runnerFor(ex.Language)
		if err != nil {
			return outcomes, fmt.Errorf("exec: %s: %w", ex.Name, err)
		}
		result, err := runner.Run(ctx, ex)
		outcomes = append(outcomes, Outcome{Example: ex, Result: result, Err: err})
		if err != nil {
			return outcomes, fmt.Errorf("exec: %s: %w", ex.Name, err)
		}
		if result.Timeout && !runner.Cancel(ctx, ex) {
			broken[ex.Language] = true
		}
	}
	return outcomes, nil
}

// Close releases every Runner this Executor spawned, returning the first
// error encountered.
func (e *Executor) Close() error {
	var firstErr error
	for _, r := range e.runners {
		if err := r.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (e *Executor) runnerFor(language string) (harvest.Runner, error) {
	if r, ok := e.runners[language]; ok {
		return r, nil
	}
	r, err := e.registry.NewRunner(language)
	if err != nil {
		return nil, err
	}
	e.runners[language] = r
	return r, nil
}

// Summary tallies pass/fail counts across a set of outcomes.
type Summary struct {
	Total, Passed, Failed int
}

// Summarize tallies outcomes.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.Passed() {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}
