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

// Package parse implements harvest.Parser for the candidates finder
// produces: splitting prompt/marker syntax away from interpreter input,
// pulling a per-example option comment into the enclosing option stack, and
// compiling any expected-output text via the expected package.
package parse

import (
	"fmt"
	"strings"

	"github.com/execdoc/execdoc/harvest"
	"github.com/execdoc/execdoc/internal/expected"
	"github.com/execdoc/execdoc/internal/optparse"
)

// Default prompt markers; must match the corresponding finder's.
const (
	shellPrompt       = "$ "
	shellContinuation = "> "
)

// modelinePrefix marks a per-example option comment trailing a command
// line, e.g. "$ make test  # execdoc: +norm-ws -tags".
const modelinePrefix = "# execdoc:"

// listOptions names option keys that accumulate across repeated
// "+name=value" occurrences instead of overwriting.
var listOptions = map[string]bool{"rm": true}

// ShellParser parses ShellPromptFinder candidates.
type ShellParser struct {
	cache *optparse.Cache
}

// NewShellParser returns a ShellParser for the "shell" language, caching
// resolved option scopes across candidates that share the same modeline.
func NewShellParser() *ShellParser { return &ShellParser{cache: optparse.NewCache(0)} }

func (p *ShellParser) ID() string { return "shell" }

func (p *ShellParser) Parse(c harvest.ExampleCandidate, enclosing *optparse.Stack) (harvest.Example, error) {
	lines := strings.Split(c.RawSource, "\n")

	var srcLines []string
	var modelineTokens []string
	i := 0
	for i < len(lines) {
		line := lines[i]
		body, isCommand := strings.CutPrefix(line, shellPrompt)
		if !isCommand {
			body, isCommand = strings.CutPrefix(line, shellContinuation)
		}
		if !isCommand {
			break
		}
		if idx := strings.Index(body, modelinePrefix); idx >= 0 {
			toks, err := optparse.Tokenize(strings.TrimSpace(body[idx+len(modelinePrefix):]))
			if err != nil {
				return harvest.Example{}, fmt.Errorf("parse: %s: option comment: %w", c.Name(), err)
			}
			modelineTokens = append(modelineTokens, toks...)
			body = strings.TrimRight(body[:idx], " \t")
		}
		srcLines = append(srcLines, body)
		i++
	}
	expectedStr := strings.Join(lines[i:], "\n")

	scope, err := p.cache.Resolve(modelineTokens, func(toks []string) (optparse.Scope, error) {
		return optparse.ParseTokens(toks, listOptions)
	})
	if err != nil {
		return harvest.Example{}, fmt.Errorf("parse: %s: %w", c.Name(), err)
	}

	pop := enclosing.Push(scope)
	defer pop()

	expectedStr = applyRemovals(expectedStr, enclosing.List("rm"))

	var exp *expected.Expected
	if strings.TrimSpace(expectedStr) != "" {
		exp, err = expected.Compile(expectedStr, enclosing.Bool("norm-ws", true), enclosing.Bool("tags", true))
		if err != nil {
			return harvest.Example{}, fmt.Errorf("parse: %s: compiling expected output: %w", c.Name(), err)
		}
	}

	return harvest.Example{
		Name:     c.Name(),
		Where:    c.Where,
		Language: c.Language,
		Source:   strings.Join(srcLines, "\n") + "\n",
		Expected: exp,
		Options:  enclosing.Flatten(),
	}, nil
}
