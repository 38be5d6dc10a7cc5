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

package harvest

import (
	"github.com/execdoc/execdoc/internal/expected"
	"github.com/execdoc/execdoc/internal/optparse"
)

// Example is a fully parsed, immutable runnable unit: interpreter input
// paired with its compiled expected output. Once a Harvester emits an
// Example, nothing about it changes; a Runner only ever reads it.
type Example struct {
	// Name is this example's stable identity for logs and error messages:
	// its finder id plus its ordinal among that finder's candidates. It is
	// never parsed back into FinderID/Ordinal; treat it as opaque.
	Name string

	Where Where

	// Language is the id used to look up this example's Runner in a
	// Registry.
	Language string

	// Source is the text fed to the interpreter, prompt/marker syntax
	// already stripped by the Parser.
	Source string

	// Expected is nil for an example with no expected-output block (source
	// is still run, but its output is never checked).
	Expected *expected.Expected

	// Options is this example's fully resolved option scope: its own
	// modeline merged over every enclosing scope, most specific wins.
	Options optparse.Scope
}
