package main

import (
	"fmt"
	"os"

	"chore/internal/app"
)

// Overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0-dev"

func main() {
	os.Exit(run())
}

func run() int {
	a, err := app.New(os.Args[0], version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chore: %v\n", err)
		return 1
	}
	return a.Run(os.Args[1:])
}
