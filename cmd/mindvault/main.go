// Package main is the entry point for the Mind Vault game.
package main

import (
	"os"

	"github.com/f3rmion/mindvault/cmd/mindvault/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
