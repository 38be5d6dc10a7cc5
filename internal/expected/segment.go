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

// Package expected implements the expected-output compiler: an explicit
// state machine that lowers an expected-output string containing ellipsis
// wildcards and named capture tags into a regular expression, in two
// variants (literal whitespace and whitespace-normalizing), while tracking
// per-segment source offsets and "real character" counts for diff blame.
package expected

// SegmentKind classifies one emitted regex segment. Downstream consumers
// should pattern-match on Kind rather than rely on open polymorphism (see
// the design note on dynamic dispatch across languages).
type SegmentKind int

const (
	// SegAnchor is a synthetic boundary segment (\A or the trailing
	// newline/whitespace anchor) that does not correspond to literal source
	// text.
	SegAnchor SegmentKind = iota
	// SegLiteral is an escaped run of literal text.
	SegLiteral
	// SegNamedTag is a named capture tag, <name>.
	SegNamedTag
	// SegUnnamedTag is the unnamed ellipsis wildcard, <...>.
	SegUnnamedTag
	// SegWsRun is a maximal whitespace run between two literals, emitted
	// only by the whitespace-normalizing variant.
	SegWsRun
)

func (k SegmentKind) String() string {
	switch k {
	case SegAnchor:
		return "Anchor"
	case SegLiteral:
		return "Literal"
	case SegNamedTag:
		return "NamedTag"
	case SegUnnamedTag:
		return "UnnamedTag"
	case SegWsRun:
		return "WsRun"
	default:
		return "Unknown"
	}
}

// Segment is one piece of the compiled regex, carrying enough bookkeeping to
// reconstruct rcounts/charnos (§4.5.3) and to resolve named captures back to
// their tag name.
type Segment struct {
	Kind SegmentKind

	// Pattern is this segment's regex fragment, already escaped/wrapped as
	// appropriate for Kind.
	Pattern string

	// TagName is the original (unsanitized) tag name for SegNamedTag, or ""
	// otherwise.
	TagName string

	// GroupName is the sanitized regexp2 capture-group name used in
	// Pattern for SegNamedTag, or "" otherwise.
	GroupName string

	// Charno is the byte offset in the source expected_str where this
	// segment's text begins. Synthetic anchors carry 0 (leading) or
	// len(expected_str) (trailing).
	Charno int

	// RCount is the number of "real" (concrete) characters this segment
	// asserts against the actual output; see §4.5.3.
	RCount int
}
