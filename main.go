package main

import (
	"fmt"
	"os"

	"github.com/temirov/stamp/cmd/cli"
)

// main executes the stamp command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintln(os.Stderr, executionError)
		os.Exit(1)
	}
}
