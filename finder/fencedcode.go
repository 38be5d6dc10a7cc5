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

package finder

import (
	"fmt"
	"strings"

	"github.com/execdoc/execdoc/harvest"
)

// FencedCodeFinder recognizes Markdown fenced code blocks (``` or ~~~)
// whose info-string names a key of Languages. Unrecognized fences are
// skipped; they are ordinary documentation, not examples.
type FencedCodeFinder struct {
	// Languages maps a fence's info-string (e.g. "shell", "pycon") to the
	// Language id a Parser/Runner pair is registered under.
	Languages map[string]string
}

// NewFencedCodeFinder returns a FencedCodeFinder recognizing the given
// fence-tag -> language-id mapping.
func NewFencedCodeFinder(languages map[string]string) *FencedCodeFinder {
	return &FencedCodeFinder{Languages: languages}
}

func (f *FencedCodeFinder) ID() string { return "fenced-code" }

func (f *FencedCodeFinder) Find(zone harvest.Zone) ([]harvest.ExampleCandidate, error) {
	lines := strings.Split(zone.Text, "\n")
	var out []harvest.ExampleCandidate
	ordinal := 0

	i := 0
	for i < len(lines) {
		indent, fence, tag, ok := parseFenceOpen(lines[i])
		if !ok {
			i++
			continue
		}
		contentStart := i + 1
		j := contentStart
		for j < len(lines) && !isFenceClose(lines[j], fence) {
			j++
		}
		if j >= len(lines) {
			break // unterminated fence: nothing further in this zone is fenced
		}

		if language, recognized := f.Languages[tag]; recognized {
			endLine := j - 1
			if endLine < contentStart {
				endLine = contentStart
			}

			var normalized []string
			newEnd := endLine
			if j > contentStart {
				var err error
				normalized, newEnd, err = stripIndentation(lines, contentStart, endLine, indent)
				if err != nil {
					return nil, fmt.Errorf("fenced-code finder: %s:%d: %w", zone.Where.FilePath, zone.Where.StartLine+contentStart, err)
				}
				for _, l := range normalized {
					if strings.TrimSpace(l) == fence {
						return nil, fmt.Errorf("fenced-code finder: %s:%d: self-recheck failed: stray %q after indent normalization", zone.Where.FilePath, zone.Where.StartLine+contentStart, fence)
					}
				}
			}

			where := harvest.Where{
				StartLine:       zone.Where.StartLine + contentStart,
				EndLine:         zone.Where.StartLine + endLine,
				FilePath:        zone.Where.FilePath,
				ZoneDelimiterID: zone.Where.ZoneDelimiterID,
				Indentation:     indent,
			}.WithEndLine(zone.Where.StartLine + newEnd)

			ordinal++
			out = append(out, harvest.ExampleCandidate{
				Where:     where,
				Language:  language,
				FinderID:  f.ID(),
				Ordinal:   ordinal,
				RawSource: strings.Join(normalized, "\n"),
			})
		}
		i = j + 1
	}
	return out, nil
}

func parseFenceOpen(line string) (indent, fence, tag string, ok bool) {
	indent = leadingWhitespace(line)
	trimmed := line[len(indent):]
	for _, marker := range [...]string{"```", "~~~"} {
		if strings.HasPrefix(trimmed, marker) {
			return indent, marker, strings.TrimSpace(trimmed[len(marker):]), true
		}
	}
	return "", "", "", false
}

func isFenceClose(line, fence string) bool {
	return strings.TrimSpace(line) == fence
}
