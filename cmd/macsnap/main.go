// Package main provides the entry point for the macsnap CLI.
package main

import (
	"errors"
	"os"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := Execute(); err != nil {
		var statusErr *exitStatusError
		if errors.As(err, &statusErr) {
			// The run summary was already printed.
			return statusErr.code
		}
		printError(err)
		return 2
	}
	return 0
}
