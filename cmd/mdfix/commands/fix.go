package commands

import (
	"os"

	"github.com/markhazleton/mdfix/pkg/config"
	"github.com/markhazleton/mdfix/pkg/fixer"
	"github.com/markhazleton/mdfix/pkg/report"
	"github.com/markhazleton/mdfix/pkg/runner"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// Options carries the root command's flag values into subcommands.
type Options struct {
	ConfigFile string
	Root       string
	DryRun     bool
	NoVerify   bool
	Debug      bool
}

// LogLevel returns the zerolog level implied by the flags
func (o *Options) LogLevel() zerolog.Level {
	if o.Debug {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// NewFixCmd creates the fix command
func NewFixCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "fix",
		Short: "Scan the document tree and repair corrupted glyphs",
		Long: `Fix walks every .md file under the document root in sorted order,
applies the rule table to each, and rewrites files whose content changed.
Exit code is 0 on success (including "all files clean") and 1 when the
document root does not exist.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load(ctx, opts.ConfigFile)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}
			if opts.Root != "" {
				cfg.Root = opts.Root
			}

			set, err := cfg.RuleSet()
			if err != nil {
				return errors.Errorf("compiling rules: %w", err)
			}

			r, err := runner.New(runner.Options{
				Config: cfg,
				Fixer:  fixer.New(set),
				Report: report.New(os.Stdout, opts.LogLevel(), opts.DryRun),
				DryRun: opts.DryRun,
				Verify: !opts.NoVerify,
			})
			if err != nil {
				return errors.Errorf("creating runner: %w", err)
			}

			if _, err := r.Run(ctx); err != nil {
				return errors.Errorf("fixing documents: %w", err)
			}
			return nil
		},
	}
}
