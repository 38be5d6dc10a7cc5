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

package parse

import "strings"

// applyRemovals implements the "rm" option (§4.3 step 3): every listed
// substring is stripped from expected output before it's compiled, e.g. to
// drop a timestamp or temp-path prefix a real interpreter would emit but
// that isn't worth matching exactly.
func applyRemovals(expectedStr string, substrs []string) string {
	for _, sub := range substrs {
		if sub != "" {
			expectedStr = strings.ReplaceAll(expectedStr, sub, "")
		}
	}
	return expectedStr
}
