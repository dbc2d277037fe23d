// Copyright 2025 Mark Hazleton
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

// Package fixer applies an ordered rule set to Markdown documents and
// reports what changed.
package fixer

import (
	"bytes"
	"context"
	"io"

	"github.com/markhazleton/mdfix/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Fixer applies an ordered rule set to document content
type Fixer struct {
	rules rules.Set
}

// 🏭 New creates a new Fixer for the given rule set
func New(set rules.Set) *Fixer {
	return &Fixer{rules: set}
}

// 📊 RuleCount records how many times one rule matched in a document
type RuleCount struct {
	Label string // Rule label, for reporting
	Count int    // Non-overlapping matches, summed over the rule's passes
}

// 📄 Result contains the outcome of fixing one document
type Result struct {
	// Changed indicates the final text differs from the original
	Changed bool

	// Replacements is the sum of all per-rule match counts
	Replacements int

	// PerRule holds the breakdown for rules that matched, in table order
	PerRule []RuleCount

	// Original is the content before any rule ran
	Original []byte

	// Fixed is the content after all rules ran
	Fixed []byte
}

// maxRulePasses bounds how often a single rule is re-applied. The default
// catalog never needs more than two passes; the cap defends against a
// configured rule whose replacement reintroduces its own pattern.
const maxRulePasses = 100

// Fix applies each rule in table order to the content. Matches are counted
// against the live text, so a later rule sees the output of earlier rules,
// never the original. The same input always yields the same output and the
// same count.
func (f *Fixer) Fix(ctx context.Context, content io.Reader) (*Result, error) {
	original, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &Result{
		Original: original,
		Fixed:    original,
	}

	current := string(original)
	for _, rule := range f.rules {
		count := 0
		// A match can consume a boundary character that the next
		// occurrence also needs (adjacent corrupted table cells share a
		// pipe), hiding it from the same pass. Re-run the rule until its
		// pattern stops matching so the fixed text is a fixpoint.
		for pass := 0; pass < maxRulePasses; pass++ {
			matches := rule.Pattern.FindAllStringIndex(current, -1)
			if len(matches) == 0 {
				break
			}
			count += len(matches)
			next := rule.Pattern.ReplaceAllString(current, rule.Replacement)
			if next == current {
				break
			}
			current = next
		}
		if count == 0 {
			continue
		}
		result.Replacements += count
		result.PerRule = append(result.PerRule, RuleCount{
			Label: rule.Label,
			Count: count,
		})
	}

	result.Fixed = []byte(current)
	result.Changed = !bytes.Equal(result.Fixed, original)
	return result, nil
}
