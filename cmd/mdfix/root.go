package main

import (
	"os"

	"github.com/markhazleton/mdfix/cmd/mdfix/commands"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, opts *commands.Options) {
	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", ".mdfix.yaml", "config file path")
	cmd.PersistentFlags().StringVar(&opts.Root, "root", "", "document root (overrides config)")
	cmd.PersistentFlags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "detect and count, but modify nothing")
	cmd.PersistentFlags().BoolVar(&opts.NoVerify, "no-verify", false, "skip the post-fix markdown audit")
	cmd.PersistentFlags().BoolVarP(&opts.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog
func setupLogging() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}

// applyLogLevel raises the global level once flags are parsed
func applyLogLevel(opts *commands.Options) {
	if opts.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}
