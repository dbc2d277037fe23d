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

package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	set := Default()
	require.Len(t, set, 15, "built-in catalog should have 15 rules")

	// Multi-character box-drawing patterns come first so a longer
	// corrupted sequence is fully repaired before a shorter prefix
	// pattern can partially match it.
	assert.Equal(t, "Tree branch with line", set[0].Label)
	assert.Equal(t, "Tree vertical + branch", set[1].Label)
	assert.Equal(t, "Tree vertical with spaces", set[2].Label)

	labels := make(map[string]bool, len(set))
	for _, r := range set {
		labels[r.Label] = true
		assert.NotNil(t, r.Pattern, "rule %q should have a compiled pattern", r.Label)
		assert.NotEmpty(t, r.Replacement, "rule %q should have a replacement", r.Label)
	}
	for _, want := range []string{"Check mark", "Hourglass", "Yellow circle", "Target emoji", "Target emoji (alternate)", "Target in table", "Rocket emoji"} {
		assert.True(t, labels[want], "catalog should contain rule %q", want)
	}
}

func TestDefaultSpecs_ReturnsCopy(t *testing.T) {
	specs := DefaultSpecs()
	require.NotEmpty(t, specs)

	specs[0].Label = "mutated"
	assert.NotEqual(t, "mutated", DefaultSpecs()[0].Label, "mutating the copy must not touch the catalog")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		specs     []Spec
		wantError string
	}{
		{
			name: "valid_specs",
			specs: []Spec{
				{Pattern: `\?\?\?`, Replacement: "├──", Label: "Tree branch with line"},
			},
		},
		{
			name:  "empty_specs",
			specs: []Spec{},
		},
		{
			name: "missing_pattern",
			specs: []Spec{
				{Replacement: "x", Label: "some rule"},
			},
			wantError: "pattern is required",
		},
		{
			name: "missing_label",
			specs: []Spec{
				{Pattern: `\?`, Replacement: "x"},
			},
			wantError: "label is required",
		},
		{
			name: "invalid_pattern",
			specs: []Spec{
				{Pattern: `(unclosed`, Replacement: "x", Label: "broken"},
			},
			wantError: "compiling pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.specs)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCompile_PreservesOrder(t *testing.T) {
	specs := []Spec{
		{Pattern: `a`, Replacement: "1", Label: "first"},
		{Pattern: `b`, Replacement: "2", Label: "second"},
		{Pattern: `c`, Replacement: "3", Label: "third"},
	}

	set, err := Compile(specs)
	require.NoError(t, err)
	require.Len(t, set, 3)
	for i, want := range []string{"first", "second", "third"} {
		assert.Equal(t, want, set[i].Label, "rule %d should keep its position", i)
	}
}

func TestCompile_InvalidSpec(t *testing.T) {
	_, err := Compile([]Spec{{Pattern: `[`, Replacement: "x", Label: "bad"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiling pattern")
}
