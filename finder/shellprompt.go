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

// Package finder implements harvest.Finder for the two concrete shapes an
// executable example takes in a prose document: an interactive
// shell-prompt transcript, and a fenced code block tagged with a
// recognized language.
package finder

import (
	"fmt"
	"strings"

	"github.com/execdoc/execdoc/harvest"
)

// Default prompt markers, carried over from the interactive-shell
// convention this tool's examples are written against: "$ " starts a
// command, "> " continues one onto another line.
const (
	DefaultPrompt       = "$ "
	DefaultContinuation = "> "
)

// ShellPromptFinder recognizes PS1/PS2-style transcripts: one or more
// prompt/continuation lines followed by zero or more non-prompt lines
// holding the expected output, terminated by a blank line, the next prompt,
// or the end of the zone. It does not itself separate source from expected
// output; that is the corresponding Parser's job.
type ShellPromptFinder struct {
	Prompt       string
	Continuation string
}

// NewShellPromptFinder returns a ShellPromptFinder using the default
// prompt/continuation markers.
func NewShellPromptFinder() *ShellPromptFinder {
	return &ShellPromptFinder{Prompt: DefaultPrompt, Continuation: DefaultContinuation}
}

func (f *ShellPromptFinder) ID() string { return "shell-prompt" }

func (f *ShellPromptFinder) Find(zone harvest.Zone) ([]harvest.ExampleCandidate, error) {
	lines := strings.Split(zone.Text, "\n")
	var out []harvest.ExampleCandidate
	ordinal := 0

	i := 0
	for i < len(lines) {
		indent := leadingWhitespace(lines[i])
		if !strings.HasPrefix(lines[i], indent+f.Prompt) {
			i++
			continue
		}
		start := i
		i++
		for i < len(lines) && lines[i] != "" && !strings.HasPrefix(lines[i], indent+f.Prompt) {
			i++
		}
		end := i - 1

		normalized, newEnd, err := stripIndentation(lines, start, end, indent)
		if err != nil {
			return nil, fmt.Errorf("shell-prompt finder: %s:%d: %w", zone.Where.FilePath, zone.Where.StartLine+start, err)
		}
		if !strings.HasPrefix(normalized[0], f.Prompt) {
			return nil, fmt.Errorf("shell-prompt finder: %s:%d: self-recheck failed after indent normalization", zone.Where.FilePath, zone.Where.StartLine+start)
		}

		where := harvest.Where{
			StartLine:       zone.Where.StartLine + start,
			EndLine:         zone.Where.StartLine + end,
			FilePath:        zone.Where.FilePath,
			ZoneDelimiterID: zone.Where.ZoneDelimiterID,
			Indentation:     indent,
		}.WithEndLine(zone.Where.StartLine + newEnd)

		ordinal++
		out = append(out, harvest.ExampleCandidate{
			Where:     where,
			Language:  "shell",
			FinderID:  f.ID(),
			Ordinal:   ordinal,
			RawSource: strings.Join(normalized, "\n"),
		})
	}
	return out, nil
}
