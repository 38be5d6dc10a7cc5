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
	"fmt"
	"strings"
)

// segBuilder accumulates Segments while compiling, keeping track of which
// named tags have already been emitted so repeated occurrences can be
// lowered to a backreference instead of a second capture group (§4.5.4).
type segBuilder struct {
	segs  []Segment
	first map[string]string // tag name -> sanitized group name of its first occurrence
	dup   map[string]int    // tag name -> count of occurrences seen so far, for disambiguating group names is unused since repeats backreference
}

func newSegBuilder() *segBuilder {
	return &segBuilder{first: map[string]string{}, dup: map[string]int{}}
}

func (b *segBuilder) anchor(pattern string, charno int) {
	b.segs = append(b.segs, Segment{Kind: SegAnchor, Pattern: pattern, Charno: charno})
}

func (b *segBuilder) literal(text string, charno int) {
	if text == "" {
		return
	}
	b.segs = append(b.segs, Segment{Kind: SegLiteral, Pattern: quoteMeta(text), Charno: charno, RCount: len(text)})
}

func (b *segBuilder) wsRun(charno int) {
	b.segs = append(b.segs, Segment{Kind: SegWsRun, Pattern: `\s+(?!\s)`, Charno: charno, RCount: 1})
}

func (b *segBuilder) unnamedTag(charno int) {
	b.segs = append(b.segs, Segment{Kind: SegUnnamedTag, Pattern: `(?:.+?)`, Charno: charno})
}

// namedTag emits a named capture on the first occurrence of name, and a
// backreference to that capture on every later occurrence, per §4.5.4's
// duplicate tag policy.
func (b *segBuilder) namedTag(name string, charno int) {
	group, seen := b.first[name]
	var pattern string
	if seen {
		pattern = fmt.Sprintf(`\k<%s>`, group)
	} else {
		group = sanitizeGroupName(name)
		b.first[name] = group
		pattern = fmt.Sprintf(`(?<%s>.+?)`, group)
	}
	b.segs = append(b.segs, Segment{Kind: SegNamedTag, Pattern: pattern, TagName: name, GroupName: group, Charno: charno})
}

// quoteMeta escapes text so it is matched literally by regexp2.
func quoteMeta(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch r {
		case '\\', '^', '$', '.', '|', '?', '*', '+', '(', ')', '[', ']', '{', '}':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// compileNotNormWS implements SM_NotNormWS (§4.5.1): literal whitespace,
// ellipsis/tag wildcards, no whitespace collapsing.
func compileNotNormWS(expectedStr string, tagsEnabled bool) *segBuilder {
	toks := lex(expectedStr, tagsEnabled)
	b := newSegBuilder()
	b.anchor(`\A`, 0)
	for _, t := range toks {
		switch t.kind {
		case tokLiteral:
			b.literal(t.text, t.charno)
		case tokUnnamedTag:
			b.unnamedTag(t.charno)
		case tokNamedTag:
			b.namedTag(t.text, t.charno)
		}
	}
	b.anchor(`\n*\Z`, len(expectedStr))
	return b
}

// wsAtom is one maximal whitespace or non-whitespace run produced by
// splitting a literal token for the whitespace-normalizing variant.
type wsAtom struct {
	isWS   bool
	text   string
	charno int
}

func isWSByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// splitWsRuns splits text into maximal whitespace/non-whitespace runs,
// preserving absolute byte offsets via baseCharno.
func splitWsRuns(text string, baseCharno int) []wsAtom {
	var atoms []wsAtom
	i := 0
	for i < len(text) {
		start := i
		ws := isWSByte(text[i])
		for i < len(text) && isWSByte(text[i]) == ws {
			i++
		}
		atoms = append(atoms, wsAtom{isWS: ws, text: text[start:i], charno: baseCharno + start})
	}
	return atoms
}

// compileNormWS implements SM_NormWS (§4.5.2): whitespace runs collapse to
// `\s+(?!\s)` and tag captures are lazy, relying on regexp2's backtracking
// (rather than RE2-style determinism) to avoid a tag's capture overrunning
// into an adjacent mandatory whitespace run or literal.
func compileNormWS(expectedStr string, tagsEnabled bool) *segBuilder {
	toks := lex(expectedStr, tagsEnabled)
	b := newSegBuilder()
	b.anchor(`\A`, 0)
	for _, t := range toks {
		switch t.kind {
		case tokLiteral:
			for _, atom := range splitWsRuns(t.text, t.charno) {
				if atom.isWS {
					b.wsRun(atom.charno)
				} else {
					b.literal(atom.text, atom.charno)
				}
			}
		case tokUnnamedTag:
			b.unnamedTag(t.charno)
		case tokNamedTag:
			b.namedTag(t.text, t.charno)
		}
	}
	b.anchor(`\s*\Z`, len(expectedStr))
	return b
}
