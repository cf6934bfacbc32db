package main

import (
	"os"

	"github.com/andrz/loxi/cmd/loxi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
