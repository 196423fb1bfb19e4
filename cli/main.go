package main

import (
	"fmt"
	"os"

	"github.com/mintmuse/mintmuse-cli/internal/cli"
	"github.com/mintmuse/mintmuse-cli/internal/cli/render"
	"github.com/mintmuse/mintmuse-cli/internal/config"
)

// Set via -ldflags "-X main.version=..."
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	config.SetBuildFlags(version, commit, date)

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, render.FormatError(err))
		os.Exit(1)
	}
}
