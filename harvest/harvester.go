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
	"fmt"
	"slices"

	"github.com/execdoc/execdoc/internal/collections"

	"github.com/execdoc/execdoc/internal/optparse"
)

// Harvester ties a Registry's Finders/Parsers to one ZoneDelimiter and
// produces the ordered, overlap-free list of Examples for a document.
type Harvester struct {
	registry  *Registry
	delimiter ZoneDelimiter
	base      optparse.Scope
}

// NewHarvester returns a Harvester that splits documents with delimiter and
// seeds every document's option stack with base (e.g. config defaults),
// the least specific scope.
func NewHarvester(registry *Registry, delimiter ZoneDelimiter, base optparse.Scope) *Harvester {
	if delimiter == nil {
		delimiter = NoDelimiter()
	}
	return &Harvester{registry: registry, delimiter: delimiter, base: base}
}

// Harvest discovers, arbitrates and parses every example in document,
// returning them in document order.
func (h *Harvester) Harvest(filePath, document string) ([]Example, error) {
	zones := h.delimiter.Split(filePath, document)

	var candidates []ExampleCandidate
	// Finders number candidates per zone; renumber them per finder across
	// the whole document so each Ordinal (and Name) is unique in it.
	ordinals := map[string]int{}
	for _, zone := range zones {
		found, err := h.findInZone(zone)
		if err != nil {
			return nil, fmt.Errorf("harvest: %s: %w", filePath, err)
		}
		for _, c := range found {
			ordinals[c.FinderID]++
			c.Ordinal = ordinals[c.FinderID]
			candidates = append(candidates, c)
		}
	}

	resolved, err := arbitrateOverlaps(candidates)
	if err != nil {
		return nil, fmt.Errorf("harvest: %s: %w", filePath, err)
	}

	stack := optparse.NewStack(h.base)
	examples := make([]Example, 0, len(resolved))
	for _, c := range resolved {
		parser, err := h.registry.ParserFor(c.Language)
		if err != nil {
			return nil, fmt.Errorf("harvest: %s: candidate %s: %w", filePath, c.Name(), err)
		}
		ex, err := parser.Parse(c, stack)
		if err != nil {
			return nil, fmt.Errorf("harvest: %s: candidate %s: %w", filePath, c.Name(), err)
		}
		examples = append(examples, ex)
	}
	return examples, nil
}

// findInZone runs every registered Finder over zone and merges their
// individually-ordered candidate streams into one document-ordered stream
// via a k-way priority-queue merge (§4.4), rather than collecting
// everything and sorting afterwards.
func (h *Harvester) findInZone(zone Zone) ([]ExampleCandidate, error) {
	streams := make([][]ExampleCandidate, 0, len(h.registry.Finders()))
	for _, finder := range h.registry.Finders() {
		cands, err := finder.Find(zone)
		if err != nil {
			return nil, fmt.Errorf("finder %s: %w", finder.ID(), err)
		}
		streams = append(streams, cands)
	}
	return mergeCandidateStreams(streams), nil
}

// mergeItem is one cursor position within one Finder's candidate stream,
// ordered for the k-way merge by (StartLine, stream index).
type mergeItem struct {
	candidate ExampleCandidate
	stream    int
	pos       int
}

func (m mergeItem) Less(other mergeItem) bool {
	if m.candidate.Where.StartLine != other.candidate.Where.StartLine {
		return m.candidate.Where.StartLine < other.candidate.Where.StartLine
	}
	return m.stream < other.stream
}

func mergeCandidateStreams(streams [][]ExampleCandidate) []ExampleCandidate {
	pq := collections.NewEmptyPriorityQueue[mergeItem]()
	for i, s := range streams {
		if len(s) > 0 {
			pq.Push(mergeItem{candidate: s[0], stream: i, pos: 0})
		}
	}
	var merged []ExampleCandidate
	for !pq.Empty() {
		item := pq.Pop()
		merged = append(merged, item.candidate)
		if next := item.pos + 1; next < len(streams[item.stream]) {
			pq.Push(mergeItem{candidate: streams[item.stream][next], stream: item.stream, pos: next})
		}
	}
	return merged
}

// overlapKind classifies the relationship between two candidates' Where
// spans, per §4.4's three overlap types.
type overlapKind int

const (
	overlapNone overlapKind = iota
	// overlapType1: both spans start on the same line. Always fatal: no
	// finder precedence rule can resolve which one the author meant.
	overlapType1
	// overlapType2: one span properly contains the other (e.g. a fenced
	// code block nested inside a larger quoted region). The inner
	// candidate is dropped.
	overlapType2
	// overlapType3: the spans partially overlap without containment.
	// Always fatal.
	overlapType3
)

func classifyOverlap(a, b Where) overlapKind {
	if !a.Overlaps(b) {
		return overlapNone
	}
	if a.StartLine == b.StartLine {
		return overlapType1
	}
	if a.Contains(b) || b.Contains(a) {
		return overlapType2
	}
	return overlapType3
}

// arbitrateOverlaps resolves overlap between candidates drawn from every
// zone/finder combination, dropping properly-contained candidates and
// failing on same-start-line or partial overlaps. It runs in O(n²): each
// candidate is compared against every previously accepted one, which
// converges because accepted only shrinks or grows by one per outer step.
func arbitrateOverlaps(candidates []ExampleCandidate) ([]ExampleCandidate, error) {
	ordered := slices.Clone(candidates)
	slices.SortFunc(ordered, func(a, b ExampleCandidate) int {
		if a.Where.StartLine != b.Where.StartLine {
			return a.Where.StartLine - b.Where.StartLine
		}
		return b.Where.EndLine - a.Where.EndLine
	})

	accepted := make([]ExampleCandidate, 0, len(ordered))
next:
	for _, c := range ordered {
		for i := 0; i < len(accepted); i++ {
			a := accepted[i]
			switch classifyOverlap(a.Where, c.Where) {
			case overlapNone:
				continue
			case overlapType1:
				return nil, fmt.Errorf("candidates %s (%s) and %s (%s) both start at line %d",
					a.Name(), a.Where, c.Name(), c.Where, a.Where.StartLine)
			case overlapType3:
				return nil, fmt.Errorf("candidates %s (%s) and %s (%s) partially overlap",
					a.Name(), a.Where, c.Name(), c.Where)
			case overlapType2:
				if a.Where.Contains(c.Where) {
					continue next // c is the inner candidate: drop it
				}
				// a is the inner candidate: drop it, keep scanning with c.
				accepted = append(accepted[:i], accepted[i+1:]...)
				i--
			}
		}
		accepted = append(accepted, c)
	}
	return accepted, nil
}
