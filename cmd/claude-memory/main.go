package main

import (
	"os"

	"github.com/MeliodasZHAO/claude-memory/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
