package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/andrz/loxi"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [script]",
	Short: "Parse and statically resolve a Lox script, dumping the AST and resolution map",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	runtime := lox.NewRuntime(lox.WithConfig(cfg), lox.WithLogger(newLogger()))
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

	interpreter := lox.NewInterpreter(runtime)
	resolver := lox.NewResolver(interpreter, runtime)
	staticErrs := resolver.Resolve(statements)

	printer := &lox.AstPrinter{}
	fmt.Print(printer.PrintStatements(statements))

	fmt.Println("\nresolution map (node -> depth):")
	for id, depth := range interpreter.Locals() {
		fmt.Printf("  %s -> %d\n", id, depth)
	}

	if len(staticErrs) > 0 {
		os.Exit(65)
	}
	return nil
}
