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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/execdoc/execdoc/harvest"
)

func zoneOf(text string) harvest.Zone {
	return harvest.Zone{
		Text:  text,
		Where: harvest.Where{StartLine: 1, EndLine: 100, FilePath: "doc.md"},
	}
}

func TestShellPromptFinderSingleCommand(t *testing.T) {
	z := zoneOf("intro text\n$ echo hi\nhi\n\nmore text\n")
	cands, err := NewShellPromptFinder().Find(z)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, 2, cands[0].Where.StartLine)
	assert.Equal(t, 3, cands[0].Where.EndLine)
	assert.Equal(t, "$ echo hi\nhi", cands[0].RawSource)
	assert.Equal(t, "shell", cands[0].Language)
}

func TestShellPromptFinderMultipleCommandsOrdinals(t *testing.T) {
	z := zoneOf("$ echo a\na\n$ echo b\nb\n")
	cands, err := NewShellPromptFinder().Find(z)
	require.NoError(t, err)
	require.Len(t, cands, 2)
	assert.Equal(t, 1, cands[0].Ordinal)
	assert.Equal(t, 2, cands[1].Ordinal)
}

func TestShellPromptFinderStripsCommonIndentation(t *testing.T) {
	z := zoneOf("  $ echo hi\n  hi\n")
	cands, err := NewShellPromptFinder().Find(z)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, "$ echo hi\nhi", cands[0].RawSource)
	assert.Equal(t, "  ", cands[0].Where.Indentation)
}

func TestShellPromptFinderTruncatesAtShortIndentLine(t *testing.T) {
	z := zoneOf("  $ echo hi\n  hi\nno indent here\n")
	cands, err := NewShellPromptFinder().Find(z)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, "$ echo hi\nhi", cands[0].RawSource)
	assert.Equal(t, 2, cands[0].Where.EndLine)
}

func TestShellPromptFinderIndentNormalizationIsIdempotent(t *testing.T) {
	z := zoneOf("$ echo hi\nhi\n")
	first, err := NewShellPromptFinder().Find(z)
	require.NoError(t, err)

	reZoned := zoneOf(first[0].RawSource)
	second, err := NewShellPromptFinder().Find(reZoned)
	require.NoError(t, err)
	assert.Equal(t, first[0].RawSource, second[0].RawSource)
}

func TestFencedCodeFinderRecognizedLanguage(t *testing.T) {
	z := zoneOf("before\n```shell\necho hi\nhi\n```\nafter\n")
	f := NewFencedCodeFinder(map[string]string{"shell": "shell"})
	cands, err := f.Find(z)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, "echo hi\nhi", cands[0].RawSource)
	assert.Equal(t, 3, cands[0].Where.StartLine)
	assert.Equal(t, 4, cands[0].Where.EndLine)
}

func TestFencedCodeFinderStripsCommonIndentation(t *testing.T) {
	z := zoneOf("- a list item\n\n  ```shell\n  echo hi\n  hi\n  ```\n")
	f := NewFencedCodeFinder(map[string]string{"shell": "shell"})
	cands, err := f.Find(z)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, "echo hi\nhi", cands[0].RawSource)
	assert.Equal(t, "  ", cands[0].Where.Indentation)
}

func TestFencedCodeFinderSkipsUnrecognizedLanguage(t *testing.T) {
	z := zoneOf("```go\nfunc main() {}\n```\n")
	f := NewFencedCodeFinder(map[string]string{"shell": "shell"})
	cands, err := f.Find(z)
	require.NoError(t, err)
	assert.Empty(t, cands)
}

func TestFencedCodeFinderUnterminatedFenceYieldsNoCandidate(t *testing.T) {
	z := zoneOf("```shell\necho hi\n")
	f := NewFencedCodeFinder(map[string]string{"shell": "shell"})
	cands, err := f.Find(z)
	require.NoError(t, err)
	assert.Empty(t, cands)
}
