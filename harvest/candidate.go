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
	"strconv"

	"github.com/execdoc/execdoc/internal/optparse"
)

// ExampleCandidate is a still-mutable example as produced by a Finder,
// before a Parser has split it into interpreter input and expected output
// and before overlap arbitration has run. FinderID and Ordinal together
// identify it in logs before it has earned a stable Example.Name.
type ExampleCandidate struct {
	Where Where

	// Language is the id a Finder uses to pick a Parser/Runner pair from the
	// Registry (e.g. "shell", "python").
	Language string

	// FinderID names the Finder that produced this candidate.
	FinderID string
	// Ordinal is this candidate's 1-based position among every candidate
	// FinderID emitted for the enclosing document.
	Ordinal int

	// RawSource is the candidate's untouched source text, including any
	// prompt/marker syntax the Parser still needs to strip.
	RawSource string

	// Options is the option scope parsed from the candidate's own
	// modeline/flag syntax, not yet merged with any enclosing scope. A
	// candidate with no modeline has a nil Options.
	Options optparse.Scope
}

// Name returns the candidate's identity for diagnostics: finder id plus its
// ordinal among that finder's candidates, e.g. "shell-prompt#3".
func (c ExampleCandidate) Name() string {
	return candidateName(c.FinderID, c.Ordinal)
}

func candidateName(finderID string, ordinal int) string {
	return finderID + "#" + strconv.Itoa(ordinal)
}
