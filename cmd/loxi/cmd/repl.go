package cmd

import (
	"github.com/andrz/loxi"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Lox session",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	runtime := lox.NewRuntime(lox.WithConfig(cfg), lox.WithLogger(newLogger()))
	runtime.RunPrompt()
	return nil
}
