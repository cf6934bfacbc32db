package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/andrz/loxi"
	"github.com/spf13/cobra"
)

var (
	parseJSON   bool
	parseRedact bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [script]",
	Short: "Parse a Lox script and print its AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "emit the AST as JSON instead of s-expressions")
	parseCmd.Flags().BoolVar(&parseRedact, "redact", false, "blank string literal values in the JSON output (requires --json)")
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	runtime := lox.NewRuntime(lox.WithLogger(newLogger()))
	scanner := lox.NewScanner(bytes.NewBuffer(data), runtime)
	tokens := scanner.ScanTokens()
	if runtime.HadError() {
		os.Exit(65)
	}

	parser := lox.NewParser(tokens, runtime)
	statements := parser.Parse()
	if runtime.HadError() {
		os.Exit(65)
	}

	if parseJSON {
		doc, err := lox.StatementsToJSON(statements)
		if err != nil {
			return err
		}

		if parseRedact {
			doc, err = lox.RedactStringLiterals(doc)
			if err != nil {
				return err
			}
		}

		fmt.Println(string(doc))
		return nil
	}

	printer := &lox.AstPrinter{}
	fmt.Print(printer.PrintStatements(statements))
	return nil
}
