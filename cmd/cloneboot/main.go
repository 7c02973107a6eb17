// Package main is the entry point for the cloneboot CLI.
//
// cloneboot refreshes a disaster-recovery compute partition from a
// production source: it clones the source's boot and data volumes,
// attaches the clones to the target partition, configures the boot
// device, and starts the target. Interrupted runs resume where they
// left off, and failed runs leave the cloned volumes marked for
// manual recovery instead of cleaning them up.
//
// For detailed usage information, run:
//
//	cloneboot --help
package main

import (
	"fmt"
	"os"

	"github.com/cloneboot/cloneboot/cmd/cloneboot/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
