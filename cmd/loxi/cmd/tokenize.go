package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/andrz/loxi"
	"github.com/spf13/cobra"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [script]",
	Short: "Scan a Lox script and print its tokens",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
}

func runTokenize(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	runtime := lox.NewRuntime(lox.WithLogger(newLogger()))
	scanner := lox.NewScanner(bytes.NewBuffer(data), runtime)
	for _, token := range scanner.ScanTokens() {
		fmt.Println(token.ToString())
	}

	if runtime.HadError() {
		os.Exit(65)
	}
	return nil
}
