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

// Package termio renders the raw bytes a pty-driven interpreter writes
// into the final text an Example's Expected pattern matches against, per
// the `term` option (§4.6): dumb, ansi or as-is.
package termio

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tonistiigi/vt100"
)

// Terminal accumulates interpreter output and renders it to text on
// demand. It is not safe for concurrent use; a Runner owns one per
// in-flight command.
type Terminal interface {
	Write(p []byte) (int, error)
	// String returns the rendered text accumulated so far.
	String() string
}

// New returns the Terminal implementation named by kind ("dumb", "ansi" or
// "as-is"; "" defaults to "dumb"). rows/cols only matter for "ansi".
func New(kind string, rows, cols int) (Terminal, error) {
	switch kind {
	case "", "dumb":
		return &Dumb{}, nil
	case "as-is":
		return &AsIs{}, nil
	case "ansi":
		if rows <= 0 {
			rows = 24
		}
		if cols <= 0 {
			cols = 80
		}
		return &Ansi{vt: vt100.NewVT100(rows, cols)}, nil
	default:
		return nil, fmt.Errorf("termio: unknown term kind %q", kind)
	}
}

// csiPattern matches a CSI escape sequence, the subset of ANSI control
// codes a dumb terminal has no use for and must not leak into matched
// output.
var csiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// tabWidth is the fixed tab stop Dumb expands to, matching a real
// terminal's default.
const tabWidth = 8

// Dumb strips ANSI control sequences and normalizes the result the way a
// real pty's raw bytes need to be normalized before they're comparable to
// an expected-output string written in a document: CRLF line endings
// collapse to LF, tabs expand to tabWidth-aligned spaces, each line is
// right-trimmed of trailing whitespace a terminal pads rows with, and the
// line break ending the last line is dropped.
type Dumb struct {
	buf strings.Builder
}

func (d *Dumb) Write(p []byte) (int, error) { return d.buf.Write(p) }

func (d *Dumb) String() string {
	s := csiPattern.ReplaceAllString(d.buf.String(), "")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(expandTabs(line), " \t")
	}
	return strings.Join(lines, "\n")
}

// expandTabs replaces each tab in line with spaces up to the next
// tabWidth-aligned column.
func expandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	var b strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

// AsIs returns every byte the interpreter wrote, escape sequences
// included, for examples whose expected output itself asserts on raw
// control codes.
type AsIs struct {
	buf strings.Builder
}

func (a *AsIs) Write(p []byte) (int, error) { return a.buf.Write(p) }
func (a *AsIs) String() string              { return a.buf.String() }

// Ansi feeds bytes through a full VT100 emulator so escape sequences
// (cursor movement, color, clear-line) are resolved the way a human
// watching the terminal would see them, rather than appearing as literal
// control codes in matched output.
type Ansi struct {
	vt *vt100.VT100
}

func (a *Ansi) Write(p []byte) (int, error) { return a.vt.Write(p) }

func (a *Ansi) String() string {
	var b strings.Builder
	for y := 0; y < len(a.vt.Content); y++ {
		line := strings.TrimRight(string(a.vt.Content[y]), " \x00")
		b.WriteString(line)
		if y < len(a.vt.Content)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
