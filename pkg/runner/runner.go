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

// Package runner orchestrates a fix run: discover documents, invoke the
// fixer per file, aggregate results, render the report.
package runner

import (
	"context"
	"path/filepath"

	"github.com/markhazleton/mdfix/pkg/config"
	"github.com/markhazleton/mdfix/pkg/fixer"
	"github.com/markhazleton/mdfix/pkg/report"
	"github.com/markhazleton/mdfix/pkg/scan"
	"github.com/markhazleton/mdfix/pkg/verify"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options contains configuration for the runner
type Options struct {
	// Config is the loaded mdfix configuration
	Config *config.Config
	// Fixer applies the rule table to each document
	Fixer *fixer.Fixer
	// Report renders the console report
	Report *report.Logger
	// DryRun detects and counts but modifies nothing
	DryRun bool
	// Verify audits changed documents for corruption the rules missed
	Verify bool
}

// 📊 Summary aggregates results over all processed files
type Summary struct {
	FilesScanned      int
	FilesChanged      int
	TotalReplacements int
}

// 🏃 Runner executes a fix run
type Runner struct {
	opts Options
}

// 🏭 New creates a new runner with the given options
func New(opts Options) (*Runner, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Fixer == nil {
		return nil, errors.Errorf("fixer is required")
	}
	if opts.Report == nil {
		return nil, errors.Errorf("report logger is required")
	}
	return &Runner{opts: opts}, nil
}

// 🏃 Run processes every document under the configured root, strictly
// sequentially and in sorted order. A failing file is reported and
// contributes zero changes and zero replacements; only a missing root
// aborts the run.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	logger := zerolog.Ctx(ctx)
	rep := r.opts.Report
	root := r.opts.Config.Root

	rep.Header()

	files, err := scan.Discover(ctx, root, r.opts.Config.Ignore)
	if err != nil {
		return nil, errors.Errorf("discovering documents: %w", err)
	}

	rep.FoundFiles(root, len(files))

	summary := &Summary{FilesScanned: len(files)}
	for _, path := range files {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}

		rep.StartFile(rel)

		result, err := r.opts.Fixer.FixFile(ctx, path, r.opts.DryRun)
		if err != nil {
			rep.FileError(rel, err)
			continue
		}

		for _, rc := range result.PerRule {
			rep.RuleHit(rc.Label, rc.Count)
		}
		rep.FileResult(rel, result.Changed, result.Replacements)

		if !result.Changed {
			continue
		}
		summary.FilesChanged++
		summary.TotalReplacements += result.Replacements

		if r.opts.Verify {
			r.verifyFile(ctx, rel, result.Fixed)
		}
	}

	rep.Summary(summary.FilesScanned, summary.FilesChanged, summary.TotalReplacements)
	rep.Finish(summary.FilesChanged)

	logger.Debug().
		Int("files_scanned", summary.FilesScanned).
		Int("files_changed", summary.FilesChanged).
		Int("total_replacements", summary.TotalReplacements).
		Msg("run finished")

	return summary, nil
}

// verifyFile audits the fixed content. Failures here are warnings, never
// run failures.
func (r *Runner) verifyFile(ctx context.Context, rel string, fixed []byte) {
	suspects, err := verify.Scan(fixed)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("file", rel).Msg("verification failed")
		return
	}
	for _, s := range suspects {
		r.opts.Report.VerifyWarning(rel, s)
	}
}
