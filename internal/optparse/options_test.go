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

package optparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tokens, err := Tokenize(`+norm-ws -tags +timeout=10 +shebangs="shell: /bin/sh -i"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"+norm-ws", "-tags", "+timeout=10", "+shebangs=shell: /bin/sh -i"}, tokens)
}

func TestParseTokens(t *testing.T) {
	testCases := []struct {
		name     string
		tokens   []string
		listOpts map[string]bool
		expected Scope
		wantErr  bool
	}{
		{
			name:   "flags and valued option",
			tokens: []string{"+norm-ws", "-tags", "+timeout=10"},
			expected: Scope{
				"norm-ws": BoolValue(true),
				"tags":    BoolValue(false),
				"timeout": StringValue("10"),
			},
		},
		{
			name:     "repeated list option accumulates",
			tokens:   []string{"+rm=foo", "+rm=bar"},
			listOpts: map[string]bool{"rm": true},
			expected: Scope{"rm": ListValue([]string{"foo", "bar"})},
		},
		{
			name:    "malformed prefix",
			tokens:  []string{"norm-ws"},
			wantErr: true,
		},
		{
			name:    "negative option with value",
			tokens:  []string{"-timeout=10"},
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseTokens(tc.tokens, tc.listOpts)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestStackMostRecentWins(t *testing.T) {
	stack := NewStack(Scope{"timeout": StringValue("5"), "term": StringValue("dumb")})
	pop := stack.Push(Scope{"timeout": StringValue("10")})
	assert.Equal(t, "10", stack.String("timeout", ""))
	assert.Equal(t, "dumb", stack.String("term", ""))
	pop()
	assert.Equal(t, "5", stack.String("timeout", ""))
}

func TestStackUnbalancedPopPanics(t *testing.T) {
	stack := NewStack()
	pop1 := stack.Push(Scope{"a": BoolValue(true)})
	stack.Push(Scope{"b": BoolValue(true)})
	assert.Panics(t, func() { pop1() })
}

func TestCacheResolveMemoizes(t *testing.T) {
	cache := NewCache(4)
	calls := 0
	parse := func(tokens []string) (Scope, error) {
		calls++
		return ParseTokens(tokens, nil)
	}
	tokens := []string{"+norm-ws"}
	s1, err := cache.Resolve(tokens, parse)
	require.NoError(t, err)
	s2, err := cache.Resolve(append([]string{}, tokens...), parse)
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
	assert.Equal(t, 1, calls)
}
