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

// Command execdoc harvests runnable examples out of documentation files,
// runs each one against a live interpreter and reports whether its actual
// output matched what the document claims it would be.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/execdoc/execdoc/config"
	"github.com/execdoc/execdoc/exec"
	"github.com/execdoc/execdoc/finder"
	"github.com/execdoc/execdoc/harvest"
	"github.com/execdoc/execdoc/internal/optparse"
	"github.com/execdoc/execdoc/parse"
	"github.com/execdoc/execdoc/runner"
	"github.com/execdoc/execdoc/zonedelim"
)

// fencedLanguages maps a fenced-code-block info string to the language id
// its Parser/Runner pair is registered under.
var fencedLanguages = map[string]string{
	"shell": "shell", "sh": "shell", "bash": "shell", "console": "shell",
}

func main() {
	configPath := flag.String("config", "execdoc.yaml", "path to the project's config file")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: execdoc [-config path] <file>...")
		os.Exit(2)
	}

	if err := run(flag.Args(), *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "execdoc: %v\n", err)
		os.Exit(1)
	}
}

func run(paths []string, configPath string) error {
	defaults, err := config.Load(configPath)
	if err != nil {
		return err
	}

	registry := newRegistry(defaults)
	delimiters := zonedelim.DefaultExtensionTable()
	base := defaults.Scope()

	ctx := context.Background()
	var failedFiles []string
	for _, path := range paths {
		summary, err := harvestAndRun(ctx, registry, delimiters, base, path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Printf("%s: %d passed, %d failed, %d total\n", path, summary.Passed, summary.Failed, summary.Total)
		if summary.Failed > 0 {
			failedFiles = append(failedFiles, path)
		}
	}
	if len(failedFiles) > 0 {
		return fmt.Errorf("failing examples in: %v", failedFiles)
	}
	return nil
}

func newRegistry(defaults config.Defaults) *harvest.Registry {
	registry := harvest.NewRegistry()
	registry.RegisterFinder(finder.NewShellPromptFinder())
	registry.RegisterFinder(finder.NewFencedCodeFinder(fencedLanguages))

	shebang := runner.DefaultShebang
	if raw, ok := defaults.Shebangs["shell"]; ok {
		shebang = runner.NewShebangTemplate(raw)
	}
	registry.RegisterLanguage("shell", parse.NewShellParser(), func() (harvest.Runner, error) {
		return runner.NewShellRunner(shebang, defaults.Rows(), defaults.Cols())
	})

	return registry
}

// harvestAndRun reads path, harvests its examples using the ZoneDelimiter
// registered for its extension, runs them and returns the tally.
func harvestAndRun(ctx context.Context, registry *harvest.Registry, delimiters *zonedelim.ExtensionTable, base optparse.Scope, path string) (exec.Summary, error) {
	document, err := os.ReadFile(path)
	if err != nil {
		return exec.Summary{}, err
	}

	delimiter := delimiters.DelimiterFor(path)
	harvester := harvest.NewHarvester(registry, delimiter, base)
	examples, err := harvester.Harvest(path, string(document))
	if err != nil {
		return exec.Summary{}, err
	}

	executor := exec.NewExecutor(registry)
	defer executor.Close()

	outcomes, err := executor.Run(ctx, examples)
	if err != nil {
		return exec.Summary{}, err
	}
	for _, o := range outcomes {
		if !o.Passed() {
			reportFailure(o)
		}
	}
	return exec.Summarize(outcomes), nil
}

// reportFailure prints a diff-style report of one failed outcome to stderr.
func reportFailure(o exec.Outcome) {
	fmt.Fprintf(os.Stderr, "FAIL %s (%s)\n", o.Example.Name, o.Example.Where)
	if o.Err != nil {
		fmt.Fprintf(os.Stderr, "  error: %v\n", o.Err)
		return
	}
	if o.Result.Timeout {
		fmt.Fprintf(os.Stderr, "  timed out\n  got:\n%s\n", indent(o.Result.Actual))
		return
	}
	if o.Example.Expected != nil {
		if tags := o.Example.Expected.TagNames(); len(tags) > 0 {
			fmt.Fprintf(os.Stderr, "  expected tags: %v\n", tags)
		}
	}
	fmt.Fprintf(os.Stderr, "  got:\n%s\n", indent(o.Result.Actual))
}

func indent(s string) string {
	return "    " + s
}
