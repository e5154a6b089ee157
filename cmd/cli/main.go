// Package main is the entry point for the reuse-cost CLI.
package main

import (
	"os"

	"reuse-cost/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
