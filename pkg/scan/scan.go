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

// Package scan enumerates the Markdown documents to process.
package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrRootNotFound indicates the configured document root does not exist.
// It is fatal for the run; nothing has been touched when it is returned.
var ErrRootNotFound = errors.Base("document root not found")

// 🔍 Discover returns every .md file under root, recursively, in
// lexicographically sorted order. Paths matching an ignore glob are
// skipped.
func Discover(ctx context.Context, root string, ignore []string) ([]string, error) {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, errors.Errorf("%w: %s", ErrRootNotFound, root)
	}
	if err != nil {
		return nil, errors.Errorf("checking document root: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%w: %s is not a directory", ErrRootNotFound, root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".md" {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return errors.Errorf("resolving relative path: %w", err)
		}
		if shouldIgnore(ctx, rel, ignore) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

// 🔍 shouldIgnore checks if a file should be ignored
func shouldIgnore(ctx context.Context, path string, patterns []string) bool {
	logger := zerolog.Ctx(ctx)
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, filepath.ToSlash(path))
		if err != nil {
			logger.Debug().Str("pattern", pattern).Str("path", path).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			logger.Debug().Str("file", path).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}
	return false
}
