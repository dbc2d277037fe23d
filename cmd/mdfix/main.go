package main

import (
	"context"
	"os"

	"github.com/markhazleton/mdfix/cmd/mdfix/commands"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	// Setup logging
	setupLogging()
	ctx := log.Logger.WithContext(context.Background())

	opts := &commands.Options{}
	fixCmd := commands.NewFixCmd(opts)

	// Create root command. Running mdfix with no subcommand runs the fix.
	rootCmd := &cobra.Command{
		Use:   "mdfix",
		Short: "Repair Markdown files whose Unicode glyphs were corrupted into question marks",
		Long: `mdfix scans a documentation tree for Markdown files, applies an ordered
list of corruption-pattern rules, and rewrites affected files in place
(UTF-8 with a byte-order marker). Run with --dry-run to see what would
change without touching any file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          fixCmd.RunE,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			applyLogLevel(opts)
		},
	}

	// Add shared flags
	addRootFlags(rootCmd, opts)

	// Add commands
	rootCmd.AddCommand(
		fixCmd,
		commands.NewRulesCmd(opts),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(err)
		os.Exit(1)
	}
}
