// Package cmd implements loxi's cobra command tree: run, repl, tokenize,
// parse, resolve, and version, grounded on the same root/subcommand split
// the pack's other script-engine CLIs use.
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:     "loxi",
	Short:   "loxi is a tree-walking interpreter for the Lox language",
	Version: Version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("loxi version {{.Version}}\ncommit: %s\n", GitCommit))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose diagnostic logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (banner, warnings_fatal)")
}

// newLogger returns a console logger at info level, or debug when --verbose
// is set — every subcommand's diagnostics (never the [line L] error wire
// format) go through this.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
