// Command registry is the civil-records and vehicle registry CLI.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/registry/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "registry:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
