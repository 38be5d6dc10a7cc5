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
)

// leadingWhitespace returns the run of spaces and tabs at the start of s,
// e.g. the prefix a fenced block inherits from being nested under a list
// item.
func leadingWhitespace(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[:i]
}

// stripIndentation implements indent normalization (§4.2): every line from
// start to end, inclusive, must either be blank or begin with indent; the
// first line that does neither truncates the block at the previous line,
// so the returned end index may be smaller than end. Running it again on
// an already-stripped result with indent == "" is a no-op, since every
// line trivially has the empty prefix.
func stripIndentation(lines []string, start, end int, indent string) (normalized []string, newEnd int, err error) {
	newEnd = start - 1
	for idx := start; idx <= end; idx++ {
		line := lines[idx]
		if line == "" {
			normalized = append(normalized, line)
			newEnd = idx
			continue
		}
		if !strings.HasPrefix(line, indent) {
			break
		}
		normalized = append(normalized, line[len(indent):])
		newEnd = idx
	}
	if len(normalized) == 0 {
		return nil, 0, fmt.Errorf("indent normalization yielded no lines")
	}
	return normalized, newEnd, nil
}
