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
	"fmt"

	"github.com/google/shlex"
)

// Tokenize splits a raw options string using POSIX-shell word-splitting
// rules, e.g. `+norm-ws -tags +timeout=10` -> ["+norm-ws", "-tags", "+timeout=10"].
func Tokenize(raw string) ([]string, error) {
	tokens, err := shlex.Split(raw)
	if err != nil {
		return nil, fmt.Errorf("tokenizing options %q: %w", raw, err)
	}
	return tokens, nil
}
