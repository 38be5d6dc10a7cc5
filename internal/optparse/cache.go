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
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of distinct tokenized option lists the
// Cache remembers. A long-lived harvesting process walking many documents
// would otherwise grow one entry per distinct options string forever.
const DefaultCacheSize = 256

// Cache memoizes ParseTokens results keyed by the tokenized option list, as
// required by the spec's "options parse caching" contract: identical token
// sequences must yield identical resolved Scopes without re-parsing.
type Cache struct {
	lru *lru.Cache[string, Scope]
}

// NewCache creates a Cache with room for size distinct token sequences. A
// non-positive size falls back to DefaultCacheSize.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, Scope](size)
	if err != nil {
		// Only returns an error for size <= 0, already guarded above.
		panic(err)
	}
	return &Cache{lru: c}
}

func cacheKey(tokens []string) string {
	// "\x00" cannot appear inside a shlex token, so it's a safe separator.
	return strings.Join(tokens, "\x00")
}

// Resolve returns the Scope for tokens, computing and caching it via parse
// on a miss.
func (c *Cache) Resolve(tokens []string, parse func([]string) (Scope, error)) (Scope, error) {
	key := cacheKey(tokens)
	if scope, ok := c.lru.Get(key); ok {
		return scope, nil
	}
	scope, err := parse(tokens)
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, scope)
	return scope, nil
}
