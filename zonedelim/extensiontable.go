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

package zonedelim

import (
	"github.com/bmatcuk/doublestar/v4"

	"github.com/execdoc/execdoc/harvest"
)

// ExtensionTable picks a harvest.ZoneDelimiter for a file path by matching
// it against an ordered list of glob patterns, first match wins.
type ExtensionTable struct {
	entries []tableEntry
}

type tableEntry struct {
	glob      string
	delimiter harvest.ZoneDelimiter
}

// NewExtensionTable returns an empty ExtensionTable.
func NewExtensionTable() *ExtensionTable { return &ExtensionTable{} }

// Register adds glob -> delimiter, tried in registration order ahead of
// any pattern registered after it.
func (t *ExtensionTable) Register(glob string, delimiter harvest.ZoneDelimiter) *ExtensionTable {
	t.entries = append(t.entries, tableEntry{glob: glob, delimiter: delimiter})
	return t
}

// DelimiterFor returns the delimiter of the first registered glob matching
// path, or harvest.NoDelimiter() if nothing matches.
func (t *ExtensionTable) DelimiterFor(path string) harvest.ZoneDelimiter {
	for _, e := range t.entries {
		if ok, _ := doublestar.Match(e.glob, path); ok {
			return e.delimiter
		}
	}
	return harvest.NoDelimiter()
}

// DefaultExtensionTable returns the built-in mapping: Markdown files split
// on heading boundaries, everything else is treated as one zone.
func DefaultExtensionTable() *ExtensionTable {
	return NewExtensionTable().
		Register("**/*.md", MarkdownZoneDelimiter{}).
		Register("**/*.markdown", MarkdownZoneDelimiter{})
}
