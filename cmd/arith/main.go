// Command arith is a command-line host for the arith native module.
package main

import (
	"fmt"
	"os"

	"github.com/reglet-dev/arith/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
