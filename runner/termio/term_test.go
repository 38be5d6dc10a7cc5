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

package termio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumbStripsAnsiEscapes(t *testing.T) {
	d, err := New("dumb", 0, 0)
	require.NoError(t, err)
	d.Write([]byte("\x1b[31mred\x1b[0m text"))
	assert.Equal(t, "red text", d.String())
}

func TestDumbNormalizesCRLFToLF(t *testing.T) {
	d, err := New("dumb", 0, 0)
	require.NoError(t, err)
	d.Write([]byte("hi\r\n"))
	assert.Equal(t, "hi", d.String())
}

func TestDumbExpandsTabsToEightColumns(t *testing.T) {
	d, err := New("dumb", 0, 0)
	require.NoError(t, err)
	d.Write([]byte("a\tb"))
	assert.Equal(t, "a"+strings.Repeat(" ", 7)+"b", d.String())
}

func TestDumbRstripsTrailingWhitespacePerLine(t *testing.T) {
	d, err := New("dumb", 0, 0)
	require.NoError(t, err)
	d.Write([]byte("line one   \r\nline two\t\r\n"))
	assert.Equal(t, "line one\nline two", d.String())
}

func TestAsIsPassesEscapesThrough(t *testing.T) {
	a, err := New("as-is", 0, 0)
	require.NoError(t, err)
	a.Write([]byte("\x1b[31mred\x1b[0m"))
	assert.Equal(t, "\x1b[31mred\x1b[0m", a.String())
}

func TestAnsiRendersPlainText(t *testing.T) {
	v, err := New("ansi", 5, 20)
	require.NoError(t, err)
	v.Write([]byte("hello\r\n"))
	assert.True(t, strings.Contains(v.String(), "hello"))
}

func TestNewUnknownKindErrors(t *testing.T) {
	_, err := New("bogus", 0, 0)
	assert.Error(t, err)
}
