// Package main is the entry point for the vidxform application.
package main

import (
	"fmt"
	"os"

	"github.com/jmylchreest/vidxform/cmd/vidxform/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cmd.ExitCode(err))
	}
}
