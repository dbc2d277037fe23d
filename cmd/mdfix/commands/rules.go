package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/markhazleton/mdfix/pkg/config"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewRulesCmd creates the rules command
func NewRulesCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the active rule table in application order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load(ctx, opts.ConfigFile)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}

			set, err := cfg.RuleSet()
			if err != nil {
				return errors.Errorf("compiling rules: %w", err)
			}

			out := cmd.OutOrStdout()
			for i, rule := range set {
				fmt.Fprintf(out, "%2d. %s\n", i+1, color.New(color.Bold).Sprint(rule.Label))
				fmt.Fprintf(out, "    pattern:     %s\n", color.New(color.FgCyan).Sprint(rule.Pattern.String()))
				fmt.Fprintf(out, "    replacement: %s\n", color.New(color.FgGreen).Sprint(rule.Replacement))
			}
			return nil
		},
	}
}
