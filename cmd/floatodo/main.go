package main

import (
	"os"

	"github.com/idilsaglam/floatodo/internal/cli"
)

func main() {
	// No subcommand opens the widget; add/ls/done/rm are scriptable.
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
