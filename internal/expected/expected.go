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

package expected

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/execdoc/execdoc/internal/collections"
)

// Expected is the compiled form of an expected-output string: a single
// regexp2 pattern assembled from Segments, plus enough bookkeeping to
// answer diff/blame questions without re-lexing the source string.
type Expected struct {
	Source       string
	NormalizedWS bool
	TagsEnabled  bool

	Segments  []Segment
	Charnos   []int          // Charnos[i] == Segments[i].Charno
	RCounts   []int          // RCounts[i] == Segments[i].RCount
	TagsByIdx map[int]string // segment index -> tag name, for SegNamedTag/SegUnnamedTag only ("" for unnamed)

	re *regexp2.Regexp
}

// Compile builds an Expected from expectedStr, choosing SM_NotNormWS or
// SM_NormWS (§4.5.1, §4.5.2) according to normalizeWS.
func Compile(expectedStr string, normalizeWS, tagsEnabled bool) (*Expected, error) {
	var b *segBuilder
	if normalizeWS {
		b = compileNormWS(expectedStr, tagsEnabled)
	} else {
		b = compileNotNormWS(expectedStr, tagsEnabled)
	}

	var pat strings.Builder
	charnos := make([]int, len(b.segs))
	rcounts := make([]int, len(b.segs))
	tagsByIdx := map[int]string{}
	for i, seg := range b.segs {
		pat.WriteString(seg.Pattern)
		charnos[i] = seg.Charno
		rcounts[i] = seg.RCount
		switch seg.Kind {
		case SegNamedTag:
			tagsByIdx[i] = seg.TagName
		case SegUnnamedTag:
			tagsByIdx[i] = ""
		}
	}

	re, err := regexp2.Compile(pat.String(), regexp2.Singleline|regexp2.Multiline)
	if err != nil {
		return nil, fmt.Errorf("expected: compiling %q: %w", expectedStr, err)
	}

	return &Expected{
		Source:       expectedStr,
		NormalizedWS: normalizeWS,
		TagsEnabled:  tagsEnabled,
		Segments:     b.segs,
		Charnos:      charnos,
		RCounts:      rcounts,
		TagsByIdx:    tagsByIdx,
		re:           re,
	}, nil
}

// Match runs the compiled pattern against actual, the interpreter's real
// output. On success it returns ok=true and a capture map keyed by the
// original (unsanitized) tag name for every named tag that appears at least
// once in Source; unnamed (<...>) tags are not included since they carry no
// name to key by.
func (e *Expected) Match(actual string) (ok bool, captures map[string]string, err error) {
	m, err := e.re.FindStringMatch(actual)
	if err != nil {
		return false, nil, fmt.Errorf("expected: matching: %w", err)
	}
	if m == nil {
		return false, nil, nil
	}

	captures = make(map[string]string, len(e.TagsByIdx))
	for _, seg := range e.Segments {
		if seg.Kind != SegNamedTag || seg.GroupName == "" {
			continue
		}
		if _, ok := captures[seg.TagName]; ok {
			continue // duplicate occurrence: already recorded from its first group
		}
		g := m.GroupByName(seg.GroupName)
		if g == nil {
			continue
		}
		captures[seg.TagName] = g.String()
	}
	return true, captures, nil
}

// TagNames returns the distinct named tags this pattern captures, sorted,
// collapsing repeated occurrences of the same tag to one entry.
func (e *Expected) TagNames() []string {
	names := make(collections.Set[string], len(e.TagsByIdx))
	for _, name := range e.TagsByIdx {
		if name != "" {
			names.Add(name)
		}
	}
	return names.SortedValues(cmp.Compare[string])
}

// String returns the assembled regex pattern, mainly for diagnostics.
func (e *Expected) String() string {
	var b strings.Builder
	for _, seg := range e.Segments {
		b.WriteString(seg.Pattern)
	}
	return b.String()
}
