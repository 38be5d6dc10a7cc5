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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheResolveMemoizesIdenticalTokenSequences(t *testing.T) {
	c := NewCache(0)
	calls := 0
	parse := func(tokens []string) (Scope, error) {
		calls++
		return Scope{"norm-ws": BoolValue(true)}, nil
	}

	tokens := []string{"+norm-ws", "-tags"}
	s1, err := c.Resolve(tokens, parse)
	require.NoError(t, err)
	s2, err := c.Resolve(tokens, parse)
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "second Resolve with identical tokens must hit the cache")
	assert.Equal(t, s1, s2)
}

func TestCacheResolveDistinguishesTokenSequences(t *testing.T) {
	c := NewCache(0)
	calls := 0
	parse := func(tokens []string) (Scope, error) {
		calls++
		return ParseTokens(tokens, nil)
	}

	_, err := c.Resolve([]string{"+norm-ws"}, parse)
	require.NoError(t, err)
	_, err = c.Resolve([]string{"-norm-ws"}, parse)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestCacheResolvePropagatesParseError(t *testing.T) {
	c := NewCache(0)
	wantErr := errors.New("boom")
	_, err := c.Resolve([]string{"+x"}, func([]string) (Scope, error) {
		return nil, wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestNewCacheDefaultsNonPositiveSize(t *testing.T) {
	c := NewCache(-1)
	require.NotNil(t, c.lru)
}
