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

package harvest

import (
	"context"
	"fmt"

	"github.com/execdoc/execdoc/internal/optparse"
)

// Finder scans one Zone's text for ExampleCandidates. Distinct finders may
// run over the same zone (e.g. a shell-prompt finder and a fenced-code
// finder both see the same Markdown zone); the Harvester arbitrates
// overlaps between their output.
type Finder interface {
	// ID names this finder, used as ExampleCandidate.FinderID.
	ID() string
	// Find returns every candidate this finder recognizes in zone, in
	// document order. An error is fatal to the enclosing document: it
	// signals a failed indent normalization or self-recheck (§4.2), not an
	// ordinary "no candidates here".
	Find(zone Zone) ([]ExampleCandidate, error)
}

// Parser turns one ExampleCandidate into an immutable Example: stripping
// prompt/marker syntax from RawSource, compiling any expected-output block,
// and resolving the candidate's Options against an enclosing scope.
type Parser interface {
	// ID names this parser. A candidate's Language selects which Parser
	// handles it via the owning Registry.
	ID() string
	Parse(candidate ExampleCandidate, enclosing *optparse.Stack) (Example, error)
}

// Runner drives one Example's Source through an interpreter and reports
// whether the actual output matched Example.Expected. Implementations keep
// one interpreter process alive across the Examples of a single document,
// so Close must be called once the document's examples are exhausted.
//
// A Runner moves Ready/Executing -> Cancelling -> Ready | Broken around a
// timed-out Run, and any state -> ShutDown via Close.
type Runner interface {
	// ID names this runner. An Example's Language selects which Runner
	// handles it via the owning Registry.
	ID() string
	// Run executes ex, blocking until the interpreter produces output,
	// times out, or ctx is cancelled.
	Run(ctx context.Context, ex Example) (RunResult, error)
	// Cancel interrupts the interpreter after a timed-out Run and attempts
	// to recover it to Ready, dropping whatever output the interrupted
	// command still produces. It reports whether recovery succeeded; a
	// false return leaves the Runner Broken, and the caller must not call
	// Run again without first recreating it.
	Cancel(ctx context.Context, ex Example) bool
	// Close releases the interpreter process. Calling Run after Close
	// returns an error.
	Close() error
}

// RunResult is one Example's execution outcome.
type RunResult struct {
	Actual  string
	Matched bool
	Timeout bool
	// Captures holds every named tag's matched text, keyed by tag name, when
	// Matched is true and Example.Expected is non-nil.
	Captures map[string]string
}

// Registry owns every Finder/Parser/Runner keyed by language id, and hands
// out RunnerFactory closures rather than shared Runner instances, since a
// Runner is stateful per-document. Example and ExampleCandidate hold only
// string ids (Language, FinderID) and never pointers into a Registry, so
// Registry -> Example is the only edge that can exist; nothing points back.
type Registry struct {
	finders  []Finder
	parsers  map[string]Parser
	spawners map[string]RunnerFactory
}

// RunnerFactory builds a fresh Runner for one document. Runners are
// stateful (one interpreter process each), so the Registry must construct a
// new one per document rather than share a singleton.
type RunnerFactory func() (Runner, error)

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers:  map[string]Parser{},
		spawners: map[string]RunnerFactory{},
	}
}

// RegisterFinder adds finder to the set consulted for every zone.
func (r *Registry) RegisterFinder(finder Finder) {
	r.finders = append(r.finders, finder)
}

// RegisterLanguage associates a language id with the Parser and RunnerFactory
// that handle it.
func (r *Registry) RegisterLanguage(language string, parser Parser, spawn RunnerFactory) {
	r.parsers[language] = parser
	r.spawners[language] = spawn
}

// Finders returns every registered Finder, in registration order.
func (r *Registry) Finders() []Finder { return r.finders }

// ParserFor returns the Parser registered for language.
func (r *Registry) ParserFor(language string) (Parser, error) {
	p, ok := r.parsers[language]
	if !ok {
		return nil, fmt.Errorf("harvest: no parser registered for language %q", language)
	}
	return p, nil
}

// NewRunner spawns a fresh Runner for language.
func (r *Registry) NewRunner(language string) (Runner, error) {
	spawn, ok := r.spawners[language]
	if !ok {
		return nil, fmt.Errorf("harvest: no runner registered for language %q", language)
	}
	return spawn()
}
