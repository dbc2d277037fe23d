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

package fixer

import (
	"context"
	"strings"
	"testing"

	"github.com/markhazleton/mdfix/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixer_Fix(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		want        string
		wantCount   int
		wantChanged bool
		wantPerRule []RuleCount
	}{
		{
			name:        "check_mark_line",
			content:     "- ? Complete",
			want:        "- ✅ Complete",
			wantCount:   1,
			wantChanged: true,
			wantPerRule: []RuleCount{{Label: "Check mark", Count: 1}},
		},
		{
			name:        "target_heading",
			content:     "### ?? **Vision Statement**",
			want:        "### 🎯 **Vision Statement**",
			wantCount:   1,
			wantChanged: true,
			wantPerRule: []RuleCount{{Label: "Target emoji", Count: 1}},
		},
		{
			name: "heading_depth_correction",
			// The alternate vision-statement rule corrects the heading
			// depth as well. Only one rule may fire: the specific
			// three-hash rule ran first and found nothing, so there is no
			// double count.
			content:     "## ?? **Vision Statement**",
			want:        "### 🎯 **Vision Statement**",
			wantCount:   1,
			wantChanged: true,
			wantPerRule: []RuleCount{{Label: "Target emoji (alternate)", Count: 1}},
		},
		{
			name:        "tree_branch_three_marks",
			content:     "??? src",
			want:        "├── src",
			wantCount:   1,
			wantChanged: true,
			wantPerRule: []RuleCount{{Label: "Tree branch with line", Count: 1}},
		},
		{
			name: "tree_vertical_plus_branch",
			// The two-mark pattern must win before the single-mark prefix
			// pattern gets a chance to mangle it.
			content:     "?   ? deep",
			want:        "│   ├ deep",
			wantCount:   1,
			wantChanged: true,
			wantPerRule: []RuleCount{{Label: "Tree vertical + branch", Count: 1}},
		},
		{
			name:        "target_in_table",
			content:     "| ?? | done |",
			want:        "| 🎯 | done |",
			wantCount:   1,
			wantChanged: true,
			wantPerRule: []RuleCount{{Label: "Target in table", Count: 1}},
		},
		{
			name: "adjacent_table_cells",
			// Neighbouring corrupted cells share a pipe, so the first
			// substitution hides the second match; the rule must keep
			// running until every cell is repaired.
			content:     "| ?? | ?? |",
			want:        "| 🎯 | 🎯 |",
			wantCount:   2,
			wantChanged: true,
			wantPerRule: []RuleCount{{Label: "Target in table", Count: 2}},
		},
		{
			name:        "adjacent_table_cells_full_row",
			content:     "| ?? | ?? | ?? |",
			want:        "| 🎯 | 🎯 | 🎯 |",
			wantCount:   3,
			wantChanged: true,
			wantPerRule: []RuleCount{{Label: "Target in table", Count: 3}},
		},
		{
			name:        "status_list",
			content:     "- ? Complete\n- ? Planned\n- ? Partial\n",
			want:        "- ✅ Complete\n- ⏳ Planned\n- 🟡 Partial\n",
			wantCount:   3,
			wantChanged: true,
			wantPerRule: []RuleCount{
				{Label: "Check mark", Count: 1},
				{Label: "Hourglass", Count: 1},
				{Label: "Yellow circle", Count: 1},
			},
		},
		{
			name:        "repeated_pattern_counts_each_match",
			content:     "- ? Complete\nmore\n- ? Complete\n",
			want:        "- ✅ Complete\nmore\n- ✅ Complete\n",
			wantCount:   2,
			wantChanged: true,
			wantPerRule: []RuleCount{{Label: "Check mark", Count: 2}},
		},
		{
			name:        "clean_document",
			content:     "# Title\n\nNothing to see here. A lone ? is fine.\n",
			want:        "# Title\n\nNothing to see here. A lone ? is fine.\n",
			wantCount:   0,
			wantChanged: false,
		},
		{
			name:        "empty_document",
			content:     "",
			want:        "",
			wantCount:   0,
			wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(rules.Default())
			result, err := f.Fix(context.Background(), strings.NewReader(tt.content))

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.content, string(result.Original), "original content should be preserved")
			assert.Equal(t, tt.want, string(result.Fixed), "fixed content should match")
			assert.Equal(t, tt.wantCount, result.Replacements, "replacement count should match")
			assert.Equal(t, tt.wantChanged, result.Changed, "changed flag should match")
			assert.Equal(t, tt.wantPerRule, result.PerRule, "per-rule breakdown should match")
		})
	}
}

func TestFixer_Determinism(t *testing.T) {
	content := "## ?? **Vision Statement**\n\n??? docs\n- ? Complete\n"
	f := New(rules.Default())

	first, err := f.Fix(context.Background(), strings.NewReader(content))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := f.Fix(context.Background(), strings.NewReader(content))
		require.NoError(t, err)
		assert.Equal(t, string(first.Fixed), string(again.Fixed), "output should be identical on run %d", i)
		assert.Equal(t, first.Replacements, again.Replacements, "count should be identical on run %d", i)
	}
}

func TestFixer_Idempotence(t *testing.T) {
	content := "??? src\n- ? Complete\n## ?? **Vision Statement**\n| ?? | ?? | ?? |\n"
	f := New(rules.Default())

	first, err := f.Fix(context.Background(), strings.NewReader(content))
	require.NoError(t, err)
	require.True(t, first.Changed)

	second, err := f.Fix(context.Background(), strings.NewReader(string(first.Fixed)))
	require.NoError(t, err)
	assert.False(t, second.Changed, "already-fixed text should report no change")
	assert.Zero(t, second.Replacements, "already-fixed text should report zero replacements")
	assert.Equal(t, string(first.Fixed), string(second.Fixed), "already-fixed text should pass through unchanged")
}

func TestFixer_OrderSensitivity(t *testing.T) {
	// A longer pattern listed first fully repairs the sequence; reversed,
	// the shorter prefix pattern mangles it.
	long := rules.Spec{Pattern: `\?   \?`, Replacement: `│   ├`, Label: "long"}
	short := rules.Spec{Pattern: `\?   `, Replacement: `│   `, Label: "short"}

	ordered, err := rules.Compile([]rules.Spec{long, short})
	require.NoError(t, err)
	reversed, err := rules.Compile([]rules.Spec{short, long})
	require.NoError(t, err)

	input := "?   ? item"

	got, err := New(ordered).Fix(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "│   ├ item", string(got.Fixed), "ordered table should repair the full sequence")
	assert.Equal(t, []RuleCount{{Label: "long", Count: 1}}, got.PerRule)

	bad, err := New(reversed).Fix(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.NotEqual(t, "│   ├ item", string(bad.Fixed), "reversed table should produce a different result")
}

func TestFixer_SequentialComposition(t *testing.T) {
	// A later rule sees the output of earlier rules, never the original
	// text.
	first := rules.Spec{Pattern: `alpha`, Replacement: `beta`, Label: "first"}
	second := rules.Spec{Pattern: `beta`, Replacement: `gamma`, Label: "second"}

	set, err := rules.Compile([]rules.Spec{first, second})
	require.NoError(t, err)

	result, err := New(set).Fix(context.Background(), strings.NewReader("alpha"))
	require.NoError(t, err)
	assert.Equal(t, "gamma", string(result.Fixed))
	assert.Equal(t, 2, result.Replacements, "both rules should count their match")
	assert.Equal(t, []RuleCount{
		{Label: "first", Count: 1},
		{Label: "second", Count: 1},
	}, result.PerRule)
}
