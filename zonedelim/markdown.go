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

// Package zonedelim implements harvest.ZoneDelimiter for real document
// shapes, and an extension-based table for picking the right one from a
// file path.
package zonedelim

import (
	"regexp"
	"sort"
	"strings"

	"github.com/execdoc/execdoc/harvest"
)

var atxHeading = regexp.MustCompile(`^#{1,6}\s`)

// MarkdownZoneDelimiter splits a Markdown document into one Zone per
// section, delimited by ATX (`#` through `######`) or Setext (`===`/`---`
// underline) headings, so a Harvester can report which section of a long
// document an example belongs to. Lines inside a fenced code block are
// never taken as headings.
type MarkdownZoneDelimiter struct{}

func (MarkdownZoneDelimiter) ID() string { return "markdown-heading" }

func (d MarkdownZoneDelimiter) Split(filePath, document string) []harvest.Zone {
	lines := strings.Split(document, "\n")
	breaks := []int{0}
	fence := "" // marker of the fenced code block currently open, if any
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if fence != "" {
			if trimmed == fence {
				fence = ""
			}
			continue
		}
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			fence = trimmed[:3]
			continue
		}
		switch {
		case atxHeading.MatchString(line):
			if i != 0 {
				breaks = append(breaks, i)
			}
		case i > 0 && isSetextUnderline(line) && strings.TrimSpace(lines[i-1]) != "":
			if start := i - 1; start != 0 {
				breaks = append(breaks, start)
			}
		}
	}
	breaks = dedupSorted(breaks)

	zones := make([]harvest.Zone, 0, len(breaks))
	for i, start := range breaks {
		end := len(lines)
		if i+1 < len(breaks) {
			end = breaks[i+1]
		}
		zones = append(zones, harvest.Zone{
			Text: strings.Join(lines[start:end], "\n"),
			Where: harvest.Where{
				StartLine:       start + 1,
				EndLine:         end,
				FilePath:        filePath,
				ZoneDelimiterID: d.ID(),
			},
			DelimiterID: d.ID(),
		})
	}
	return zones
}

func isSetextUnderline(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	for _, r := range trimmed {
		if r != '=' && r != '-' {
			return false
		}
	}
	return true
}

func dedupSorted(breaks []int) []int {
	sort.Ints(breaks)
	out := breaks[:0]
	for i, b := range breaks {
		if i == 0 || b != out[len(out)-1] {
			out = append(out, b)
		}
	}
	return out
}
