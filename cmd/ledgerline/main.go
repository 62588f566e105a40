package main

import (
	"os"

	"github.com/ledgerline-dev/ledgerline/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
