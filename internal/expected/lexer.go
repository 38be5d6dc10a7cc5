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
	"regexp"
	"strings"
)

// tagPattern matches a capture-tag placeholder <NAME>, NAME = [A-Za-z.][A-Za-z0-9:.-]*.
var tagPattern = regexp.MustCompile(`<([A-Za-z.][A-Za-z0-9:.-]*)>`)

// unnamedTagName is the reserved tag name denoting the non-capturing
// ellipsis wildcard.
const unnamedTagName = "..."

// tokenKind distinguishes a lexeme produced by lexing expected_str.
type tokenKind int

const (
	tokLiteral tokenKind = iota
	tokNamedTag
	tokUnnamedTag
)

// token is one lexeme of expected_str: either a literal run or a capture
// tag, together with its byte offset in expected_str.
type token struct {
	kind   tokenKind
	text   string // literal content, or the tag's original name
	charno int
}

// lex splits expectedStr on the capture-tag pattern. When tagsEnabled is
// false, <...> and <name> sequences are treated as ordinary literal
// characters (i.e. the whole string lexes as a single literal token).
func lex(expectedStr string, tagsEnabled bool) []token {
	if !tagsEnabled {
		if expectedStr == "" {
			return nil
		}
		return []token{{kind: tokLiteral, text: expectedStr, charno: 0}}
	}

	matches := tagPattern.FindAllStringSubmatchIndex(expectedStr, -1)
	if matches == nil {
		if expectedStr == "" {
			return nil
		}
		return []token{{kind: tokLiteral, text: expectedStr, charno: 0}}
	}

	var tokens []token
	cursor := 0
	for _, m := range matches {
		tagStart, tagEnd := m[0], m[1]
		nameStart, nameEnd := m[2], m[3]
		if tagStart > cursor {
			tokens = append(tokens, token{kind: tokLiteral, text: expectedStr[cursor:tagStart], charno: cursor})
		}
		name := expectedStr[nameStart:nameEnd]
		if name == unnamedTagName {
			tokens = append(tokens, token{kind: tokUnnamedTag, text: name, charno: tagStart})
		} else {
			tokens = append(tokens, token{kind: tokNamedTag, text: name, charno: tagStart})
		}
		cursor = tagEnd
	}
	if cursor < len(expectedStr) {
		tokens = append(tokens, token{kind: tokLiteral, text: expectedStr[cursor:], charno: cursor})
	}
	return tokens
}

// sanitizeGroupName rewrites '-', '.' and ':' to '_' so the tag name is a
// legal regexp2 capture-group name (regexp2 follows .NET identifier rules,
// which reject all three). The original name is preserved separately as
// Segment.TagName / the tags_by_idx key.
func sanitizeGroupName(name string) string {
	r := strings.NewReplacer("-", "_", ".", "_", ":", "_")
	return r.Replace(name)
}
