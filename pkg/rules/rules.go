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

// Package rules holds the ordered catalog of corruption patterns and their
// corrected replacements.
package rules

import (
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// 📐 Spec describes a single replacement rule before compilation
type Spec struct {
	// Pattern is the regular expression matching a corrupted sequence
	Pattern string `json:"pattern" yaml:"pattern" hcl:"pattern"`

	// Replacement is the corrected text (may reference capture groups)
	Replacement string `json:"replacement" yaml:"replacement" hcl:"replacement"`

	// Label is a human-readable description used only for reporting
	Label string `json:"label" yaml:"label" hcl:"label"`
}

// 🔧 Rule is a compiled replacement rule
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
	Label       string
}

// 📚 Set is an ordered list of rules. Application order is list order:
// longer, more specific patterns must come before any shorter prefix of
// the same sequence, or the shorter pattern would partially mangle it.
type Set []Rule

// ✅ Validate checks that all rule specs are usable
func Validate(specs []Spec) error {
	for i, s := range specs {
		if s.Pattern == "" {
			return errors.Errorf("rule %d: pattern is required", i)
		}
		if s.Label == "" {
			return errors.Errorf("rule %d: label is required", i)
		}
		if _, err := regexp.Compile(s.Pattern); err != nil {
			return errors.Errorf("rule %d (%s): compiling pattern: %w", i, s.Label, err)
		}
	}
	return nil
}

// 🏭 Compile turns specs into a Set, preserving order
func Compile(specs []Spec) (Set, error) {
	if err := Validate(specs); err != nil {
		return nil, err
	}
	set := make(Set, 0, len(specs))
	for _, s := range specs {
		set = append(set, Rule{
			Pattern:     regexp.MustCompile(s.Pattern),
			Replacement: s.Replacement,
			Label:       s.Label,
		})
	}
	return set, nil
}

// defaultSpecs is the built-in catalog of known corruption cases. The
// question-mark sequences are what a mis-decoded UTF-8 glyph looks like
// after the encoding mishap; the replacements carry the intended code
// points.
var defaultSpecs = []Spec{
	// Box-drawing characters (multi-char patterns first)
	{Pattern: `\?\?\?`, Replacement: `├──`, Label: "Tree branch with line"},
	{Pattern: `\?   \?`, Replacement: `│   ├`, Label: "Tree vertical + branch"},
	{Pattern: `\?   `, Replacement: `│   `, Label: "Tree vertical with spaces"},

	// Emojis with context (to avoid replacing wrong '?' marks)
	{Pattern: `\? \*\*Teaches\*\*`, Replacement: `📚 **Teaches**`, Label: "Books emoji"},
	{Pattern: `\? \*\*Demonstrates\*\*`, Replacement: `💡 **Demonstrates**`, Label: "Light bulb emoji"},
	{Pattern: `\? \*\*Engages\*\*`, Replacement: `🤝 **Engages**`, Label: "Handshake emoji"},
	{Pattern: `\? \*\*Guides\*\*`, Replacement: `🎓 **Guides**`, Label: "Graduation cap emoji"},
	{Pattern: `\? \*\*Inspires\*\*`, Replacement: `✨ **Inspires**`, Label: "Sparkles emoji"},
	{Pattern: `extraordinary! \?\?`, Replacement: `extraordinary! 🚀`, Label: "Rocket emoji"},
	{Pattern: `### \?\? \*\*Vision Statement\*\*`, Replacement: `### 🎯 **Vision Statement**`, Label: "Target emoji"},
	// The alternate form also corrects the heading depth
	{Pattern: `## \?\? \*\*Vision Statement\*\*`, Replacement: `### 🎯 **Vision Statement**`, Label: "Target emoji (alternate)"},

	// Status emojis with common patterns. RE2 has no lookaround, so the
	// table-cell pattern captures the pipes and re-emits them.
	{Pattern: `(\|)\s*\?\?\s*(\|)`, Replacement: `$1 🎯 $2`, Label: "Target in table"},
	{Pattern: `- \? Complete`, Replacement: `- ✅ Complete`, Label: "Check mark"},
	{Pattern: `- \? Planned`, Replacement: `- ⏳ Planned`, Label: "Hourglass"},
	{Pattern: `- \? Partial`, Replacement: `- 🟡 Partial`, Label: "Yellow circle"},
}

// 🎯 Default returns the built-in rule catalog
func Default() Set {
	set, err := Compile(defaultSpecs)
	if err != nil {
		// The built-in table is validated by tests; a failure here is a
		// programming error.
		panic(err)
	}
	return set
}

// 📋 DefaultSpecs returns a copy of the built-in rule specs
func DefaultSpecs() []Spec {
	specs := make([]Spec, len(defaultSpecs))
	copy(specs, defaultSpecs)
	return specs
}
