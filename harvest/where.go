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

// Package harvest discovers, parses and orders runnable examples embedded in
// a prose document. It owns the Where/Zone/ExampleCandidate/Example data
// model, the ZoneDelimiter/Finder/Parser/Runner registry, and the Harvester
// that ties them together and arbitrates overlaps between candidates emitted
// by different finders.
package harvest

import "fmt"

// Where locates a span of source text within a document. Line numbers are
// 1-based and inclusive on both ends.
type Where struct {
	StartLine int
	EndLine   int
	FilePath  string

	// ZoneDelimiterID identifies the delimiter that produced the enclosing
	// zone, or "" if the document used the no-delimiter default.
	ZoneDelimiterID string

	// Indentation is the common leading-whitespace prefix stripped from each
	// source line before parsing (e.g. a fenced code block nested under a
	// list item). Diff reporters re-add it so quoted source lines up with
	// the original document.
	Indentation string
}

func (w Where) String() string {
	if w.StartLine == w.EndLine {
		return fmt.Sprintf("%s:%d", w.FilePath, w.StartLine)
	}
	return fmt.Sprintf("%s:%d-%d", w.FilePath, w.StartLine, w.EndLine)
}

// Contains reports whether other's line span lies entirely within w's.
func (w Where) Contains(other Where) bool {
	return w.StartLine <= other.StartLine && other.EndLine <= w.EndLine
}

// Overlaps reports whether w and other's line spans share any line,
// including when one contains the other.
func (w Where) Overlaps(other Where) bool {
	return w.StartLine <= other.EndLine && other.StartLine <= w.EndLine
}

// WithEndLine returns a copy of w with EndLine replaced. Used by indent
// normalization when a candidate is truncated because a line stopped
// sharing the block's common indentation.
func (w Where) WithEndLine(line int) Where {
	w.EndLine = line
	return w
}
