// Package main provides the entry point for the userpeek CLI.
package main

import (
	"fmt"
	"os"

	"github.com/userpeek/userpeek/cmd/userpeek/cmd"
	"github.com/userpeek/userpeek/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, errors.FormatForCLI(err))
		if errors.IsFatal(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
