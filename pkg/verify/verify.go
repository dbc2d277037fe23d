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

// Package verify audits fixed documents for corruption the rule table did
// not cover. It parses the Markdown and flags heading and paragraph text
// that still contains runs of literal question marks.
package verify

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gitlab.com/tozd/go/errors"
)

// suspectPattern matches runs of question marks that usually indicate a
// mis-decoded glyph no rule repaired. Single question marks are normal
// prose and are left alone.
var suspectPattern = regexp.MustCompile(`\?{2,}`)

// 🔍 Scan parses the document and returns the text of every heading or
// paragraph that still looks corrupted. An empty slice means the document
// is clean as far as this audit can tell.
func Scan(source []byte) ([]string, error) {
	parser := goldmark.DefaultParser()
	root := parser.Parse(text.NewReader(source))

	var suspects []string
	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node.(type) {
		case *ast.Heading, *ast.Paragraph:
		default:
			return ast.WalkContinue, nil
		}

		content := strings.TrimSpace(string(node.Text(source)))
		if suspectPattern.MatchString(content) {
			suspects = append(suspects, content)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	}

	if err := ast.Walk(root, walker); err != nil {
		return nil, errors.Errorf("walking markdown tree: %w", err)
	}

	return suspects, nil
}
