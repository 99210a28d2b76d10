package main

import (
	"fmt"
	"os"

	"github.com/de-tools/runai-atlas/pkg/runtime/terminal"
	"github.com/de-tools/runai-atlas/pkg/services/dialog"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Input:     os.Stdin,
		Output:    os.Stdout,
		ErrOutput: os.Stderr,
	})

	if err := cli.Execute(); err != nil {
		if !dialog.Reported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
