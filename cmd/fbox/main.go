// Package main provides the fbox CLI tool.
//
// Usage:
//
//	fbox [flags] <command> [args]
//
// Commands:
//
//	backends - List registered backends
//	stat     - Filesystem statistics for a path
//	size     - Size of a file in bytes
//	dump     - Write a whole file to stdout
//	cp       - Copy a file through two handles
//
// Configuration:
//
//	Defaults are embedded in the binary. Use --config to merge a YAML or
//	JSON file over them, and FBOX_CONFIG_JSON to override both.
package main

import (
	"fmt"
	"os"

	"github.com/nuln/fbox/cmd/fbox/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
