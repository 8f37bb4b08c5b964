// Package main is the entry point for the agendalink CLI.
package main

import (
	"os"

	"github.com/aidanlsb/agendalink/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
