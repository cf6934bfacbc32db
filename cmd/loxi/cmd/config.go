package cmd

import (
	"os"

	"github.com/andrz/loxi"
)

// loadConfig reads --config if given, else falls back to the interpreter's
// defaults (spec §3 of the expanded spec).
func loadConfig() (lox.Config, error) {
	if configPath == "" {
		return lox.DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return lox.Config{}, err
	}

	return lox.LoadConfig(data)
}
