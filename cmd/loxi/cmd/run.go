package cmd

import (
	"github.com/andrz/loxi"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Run a Lox script file",
	Args:  cobra.ExactArgs(1),
	RunE:  runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runScript(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	runtime := lox.NewRuntime(lox.WithConfig(cfg), lox.WithLogger(newLogger()))
	return runtime.RunFile(args[0])
}
