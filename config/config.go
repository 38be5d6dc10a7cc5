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

// Package config loads the bottom-most, least-specific option scope every
// document's Stack is seeded with: the project-wide defaults a user
// commits alongside their documentation, as opposed to a single example's
// own modeline.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/execdoc/execdoc/internal/optparse"
)

// Defaults is the shape of an execdoc.yaml config file.
type Defaults struct {
	Geometry struct {
		Rows int `yaml:"rows"`
		Cols int `yaml:"cols"`
	} `yaml:"geometry"`

	Timeout string `yaml:"timeout"`
	Term    string `yaml:"term"`

	// Shebangs maps a language id to the shebang template its Runner
	// spawns, overriding the built-in default for that language.
	Shebangs map[string]string `yaml:"shebangs"`

	NormWS *bool `yaml:"norm-ws"`
	Tags   *bool `yaml:"tags"`
}

// Load reads and parses path as YAML. A missing file is not an error: it
// returns the zero Defaults, matching every built-in default.
func Load(path string) (Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults{}, nil
		}
		return Defaults{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var d Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Defaults{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return d, nil
}

// Scope converts d into the optparse.Scope a Harvester pushes as its
// Stack's bottom-most, least-specific layer.
func (d Defaults) Scope() optparse.Scope {
	scope := make(optparse.Scope)
	if d.Timeout != "" {
		scope["timeout"] = optparse.StringValue(d.Timeout)
	}
	if d.Term != "" {
		scope["term"] = optparse.StringValue(d.Term)
	}
	if d.NormWS != nil {
		scope["norm-ws"] = optparse.BoolValue(*d.NormWS)
	}
	if d.Tags != nil {
		scope["tags"] = optparse.BoolValue(*d.Tags)
	}
	if d.Geometry.Rows > 0 || d.Geometry.Cols > 0 {
		scope["geometry"] = optparse.StringValue(fmt.Sprintf("%dx%d", d.Rows(), d.Cols()))
	}
	return scope
}

// Rows returns the configured pty row count, defaulting to 24.
func (d Defaults) Rows() int {
	if d.Geometry.Rows > 0 {
		return d.Geometry.Rows
	}
	return 24
}

// Cols returns the configured pty column count, defaulting to 80.
func (d Defaults) Cols() int {
	if d.Geometry.Cols > 0 {
		return d.Geometry.Cols
	}
	return 80
}
