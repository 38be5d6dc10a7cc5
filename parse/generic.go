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

package parse

import (
	"fmt"
	"strings"

	"github.com/execdoc/execdoc/harvest"
	"github.com/execdoc/execdoc/internal/expected"
	"github.com/execdoc/execdoc/internal/optparse"
)

// outputSeparator, on its own line, splits a fenced block's interpreter
// input from its expected output. A block without one is run but its
// output is never checked.
const outputSeparator = "# output:"

// GenericParser handles a fenced code block with no prompt syntax of its
// own: the whole block is interpreter input, optionally followed by
// outputSeparator and an expected-output section.
type GenericParser struct {
	Language string
}

// NewGenericParser returns a GenericParser for the given language id.
func NewGenericParser(language string) *GenericParser {
	return &GenericParser{Language: language}
}

func (p *GenericParser) ID() string { return p.Language }

func (p *GenericParser) Parse(c harvest.ExampleCandidate, enclosing *optparse.Stack) (harvest.Example, error) {
	lines := strings.Split(c.RawSource, "\n")
	sep := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == outputSeparator {
			sep = i
			break
		}
	}

	source, expectedStr := c.RawSource, ""
	if sep >= 0 {
		source = strings.Join(lines[:sep], "\n")
		expectedStr = strings.Join(lines[sep+1:], "\n")
	}

	pop := enclosing.Push(c.Options)
	defer pop()

	expectedStr = applyRemovals(expectedStr, enclosing.List("rm"))

	var exp *expected.Expected
	if strings.TrimSpace(expectedStr) != "" {
		var err error
		exp, err = expected.Compile(expectedStr, enclosing.Bool("norm-ws", true), enclosing.Bool("tags", true))
		if err != nil {
			return harvest.Example{}, fmt.Errorf("parse: %s: compiling expected output: %w", c.Name(), err)
		}
	}

	return harvest.Example{
		Name:     c.Name(),
		Where:    c.Where,
		Language: c.Language,
		Source:   source + "\n",
		Expected: exp,
		Options:  enclosing.Flatten(),
	}, nil
}
