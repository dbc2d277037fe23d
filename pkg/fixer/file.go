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
	"bytes"
	"context"
	"os"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
)

// utf8BOM is prepended to rewritten files for downstream compatibility.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// 📄 FixFile repairs a single Markdown file on disk. An existing BOM is
// stripped before matching so a second run over already-fixed files
// reports no changes. The file is rewritten only when content changed and
// dryRun is off; the write is atomic (temp file + rename) and prefixed
// with a UTF-8 BOM.
func (f *Fixer) FixFile(ctx context.Context, path string, dryRun bool) (*Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}

	content := bytes.TrimPrefix(raw, utf8BOM)
	if !utf8.Valid(content) {
		return nil, errors.Errorf("decoding file %s: not valid UTF-8", path)
	}

	result, err := f.Fix(ctx, bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	if !result.Changed || dryRun {
		return result, nil
	}

	out := make([]byte, 0, len(utf8BOM)+len(result.Fixed))
	out = append(out, utf8BOM...)
	out = append(out, result.Fixed...)
	if err := writeFileAtomic(path, out); err != nil {
		return nil, errors.Errorf("writing file: %w", err)
	}

	return result, nil
}

// writeFileAtomic writes to a temp file and renames it over the target, so
// a reader never observes a partially written document.
func writeFileAtomic(path string, content []byte) error {
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, content, 0644); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
