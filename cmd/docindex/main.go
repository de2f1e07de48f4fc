// Command docindex is the CLI entry point.
package main

import (
	"os"

	"github.com/hackgrid/docindex/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
