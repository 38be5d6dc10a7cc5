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

// Package optparse tokenizes and resolves per-example options of the form
// "+name", "-name" and "+name=value", maintains the ordered stack of option
// scopes (global, profile, file, example) described by the spec's Options
// entity, and caches the resolved Scope for a given token sequence.
package optparse

import (
	"fmt"
	"strings"
)

// Scope is a single resolved level of the option stack: the flags and valued
// options set by one "byexample: ..." comment, a config default layer, or an
// external profile layer.
type Scope map[string]Value

// Value is the value of a single option. Exactly one of the fields is
// meaningful, selected by Kind.
type Value struct {
	Kind ValueKind
	Bool bool
	Str  string
	List []string
}

type ValueKind int

const (
	KindBool ValueKind = iota
	KindString
	KindList
)

func BoolValue(b bool) Value     { return Value{Kind: KindBool, Bool: b} }
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }
func ListValue(l []string) Value { return Value{Kind: KindList, List: l} }

// Bool resolves name as a boolean flag in this single flattened scope,
// defaulting to dflt when unset. Mirrors Stack.Bool for callers (such as a
// Runner) holding an already-flattened Example.Options rather than a live
// Stack.
func (s Scope) Bool(name string, dflt bool) bool {
	v, ok := s[name]
	if !ok {
		return dflt
	}
	return v.Kind == KindBool && v.Bool
}

// String resolves name as a string-valued option, defaulting to dflt when
// unset or of the wrong kind.
func (s Scope) String(name, dflt string) string {
	v, ok := s[name]
	if !ok || v.Kind != KindString {
		return dflt
	}
	return v.Str
}

// List resolves name as a list-valued option, defaulting to nil.
func (s Scope) List(name string) []string {
	v, ok := s[name]
	if !ok || v.Kind != KindList {
		return nil
	}
	return v.List
}

// ParseTokens parses a tokenized option list (see Tokenize) into a Scope.
// Recognized forms:
//
//	+name          -> bool true
//	-name          -> bool false
//	+name=value    -> string value
//	+name=value    -> list [value], only for options registered as list-valued;
//	                  the value is not split on commas
//
// listOptions names which option keys accumulate repeated +name=value
// occurrences into a list instead of overwriting (the spec's "rm" option is
// the prototypical example: "+rm=foo +rm=bar" strips both substrings).
func ParseTokens(tokens []string, listOptions map[string]bool) (Scope, error) {
	scope := make(Scope, len(tokens))
	for _, tok := range tokens {
		if len(tok) < 2 {
			return nil, fmt.Errorf("malformed option %q: too short", tok)
		}
		sign := tok[0]
		if sign != '+' && sign != '-' {
			return nil, fmt.Errorf("malformed option %q: must start with '+' or '-'", tok)
		}
		body := tok[1:]

		if sign == '-' {
			if strings.ContainsRune(body, '=') {
				return nil, fmt.Errorf("malformed option %q: '-' options may not take a value", tok)
			}
			scope[body] = BoolValue(false)
			continue
		}

		name, value, hasValue := strings.Cut(body, "=")
		if !hasValue {
			scope[name] = BoolValue(true)
			continue
		}
		if listOptions[name] {
			if existing, ok := scope[name]; ok && existing.Kind == KindList {
				scope[name] = ListValue(append(append([]string{}, existing.List...), value))
				continue
			}
			scope[name] = ListValue([]string{value})
			continue
		}
		scope[name] = StringValue(value)
	}
	return scope, nil
}
