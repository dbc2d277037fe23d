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

// Package report renders the line-oriented console report. The fixer
// returns structured results; all printing lives here so the core stays
// testable without capturing console output.
package report

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

const fileIndent = 2 // spaces to indent per-file detail lines

// 🎯 Logger handles the per-file console report plus structured logging
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	dryRun  bool
}

// 🏭 New creates a new report logger. The structured mirror goes to
// stderr so it never interleaves with the report stream.
func New(console io.Writer, level zerolog.Level, dryRun bool) *Logger {
	mirror := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})
	zlog := zerolog.New(mirror).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		dryRun:  dryRun,
	}
}

// 📝 Header prints the run banner and the active mode
func (l *Logger) Header() {
	l.mu.Lock()
	defer l.mu.Unlock()

	mode := "LIVE mode (files will be modified)"
	if l.dryRun {
		mode = "DRY RUN mode (no changes will be made)"
	}

	name := color.New(color.Bold, color.FgCyan).Sprint("mdfix")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+mode))
	l.zlog.Info().Bool("dry_run", l.dryRun).Msg("starting markdown encoding fix")
}

// 📝 FoundFiles reports how many documents were discovered
func (l *Logger) FoundFiles(root string, count int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "Found %d markdown files under %s\n\n",
		count, color.New(color.FgCyan).Sprint(root))
	l.zlog.Info().Str("root", root).Int("files", count).Msg("discovered markdown files")
}

// 📝 StartFile prints the per-file header with the relative path
func (l *Logger) StartFile(rel string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(rel))
	l.zlog.Debug().Str("file", rel).Msg("processing file")
}

// 📝 RuleHit prints one "label: N replacements" detail line
func (l *Logger) RuleHit(label string, count int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%*s- %s: %d replacements\n", fileIndent, "", label, count)
	l.zlog.Debug().Str("rule", label).Int("count", count).Msg("rule matched")
}

// 📝 FileResult prints the per-file status line
func (l *Logger) FileResult(rel string, changed bool, count int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var line string
	switch {
	case !changed:
		line = fmt.Sprintf("%s no changes needed", color.New(color.FgYellow).Sprint("-"))
	case l.dryRun:
		line = fmt.Sprintf("%s would apply %d replacements", color.New(color.FgBlue).Sprint("⟳"), count)
	default:
		line = fmt.Sprintf("%s %d replacements applied", color.New(color.FgGreen).Sprint("✓"), count)
	}
	fmt.Fprintf(l.console, "%*s%s\n\n", fileIndent, "", line)

	l.zlog.Info().
		Str("file", rel).
		Bool("changed", changed).
		Int("replacements", count).
		Msg("file processed")
}

// 📝 FileError reports a per-file failure. The run continues; the file
// contributes zero changes and zero replacements.
func (l *Logger) FileError(rel string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%*s%s %v\n\n", fileIndent, "",
		color.New(color.FgRed).Sprint("✗ ERROR:"), err)
	l.zlog.Error().Err(err).Str("file", rel).Msg("skipping file")
}

// 📝 VerifyWarning reports text that still looks corrupted after the fix
func (l *Logger) VerifyWarning(rel string, snippet string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%*s%s possible remaining corruption: %q\n", fileIndent, "",
		color.New(color.FgYellow).Sprint("⚠"), snippet)
	l.zlog.Warn().Str("file", rel).Str("snippet", snippet).Msg("possible remaining corruption")
}

// 📝 Summary prints the trailing run totals
func (l *Logger) Summary(scanned, changed, replacements int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%s\n", color.New(color.Bold).Sprint("Summary"))
	fmt.Fprintf(l.console, "%*sFiles scanned:      %d\n", fileIndent, "", scanned)
	fmt.Fprintf(l.console, "%*sFiles changed:      %d\n", fileIndent, "", changed)
	fmt.Fprintf(l.console, "%*sTotal replacements: %d\n", fileIndent, "", replacements)

	l.zlog.Info().
		Int("files_scanned", scanned).
		Int("files_changed", changed).
		Int("total_replacements", replacements).
		Msg("run complete")
}

// 📝 Finish prints the closing hint for the run
func (l *Logger) Finish(changed int) {
	if changed == 0 {
		return
	}
	if l.dryRun {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println("Run without --dry-run to apply changes")
		return
	}
	pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println("Complete! Verify changes with: git diff")
}
