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

// Package runner implements harvest.Runner: spawning an interpreter under
// a pty, feeding it Example.Source, and collecting its rendered output
// until the next prompt, a timeout, or a period of silence.
package runner

import (
	"strings"

	"github.com/google/shlex"
)

// ShebangTemplate expands a `%`-delimited command template (e.g.
// "/bin/sh %flags% -c %command%") into argv, substituting each %name%
// occurrence with its TokenValue, quoted so the expansion survives a
// second round of POSIX-shell tokenization intact even when the value
// itself contains spaces or quotes.
type ShebangTemplate struct {
	Template string
}

// NewShebangTemplate wraps a raw template string.
func NewShebangTemplate(template string) ShebangTemplate {
	return ShebangTemplate{Template: template}
}

// TokenValue is one substitution value. A list value joins its words with
// spaces, each quoted individually, so "%flags%" expanding to
// ["-x", "-y z"] becomes `-x '-y z'` rather than one quoted blob.
type TokenValue struct {
	str    string
	list   []string
	isList bool
}

func StringToken(s string) TokenValue { return TokenValue{str: s} }
func ListToken(l []string) TokenValue { return TokenValue{list: l, isList: true} }

// Expand substitutes every %name% in the template and splits the result
// into argv via the same POSIX-shell tokenizer used for per-example
// options.
func (t ShebangTemplate) Expand(tokens map[string]TokenValue) ([]string, error) {
	expanded := t.Template
	for name, v := range tokens {
		expanded = strings.ReplaceAll(expanded, "%"+name+"%", quoteTokenValue(v))
	}
	return shlex.Split(expanded)
}

func quoteTokenValue(v TokenValue) string {
	if !v.isList {
		return quoteWord(v.str)
	}
	words := make([]string, len(v.list))
	for i, w := range v.list {
		words[i] = quoteWord(w)
	}
	return strings.Join(words, " ")
}

// quoteWord POSIX-single-quotes w, escaping any embedded single quote as
// '\'' , unless w already contains only shell-safe characters, in which
// case it is left bare for readability.
func quoteWord(w string) string {
	if w == "" {
		return "''"
	}
	if isShellSafe(w) {
		return w
	}
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range w {
		if r == '\'' {
			b.WriteString(`'\''`)
			continue
		}
		b.WriteRune(r)
	}
	b.WriteByte('\'')
	return b.String()
}

func isShellSafe(w string) bool {
	for _, r := range w {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.' || r == '/' || r == ':' || r == '=':
		default:
			return false
		}
	}
	return true
}
