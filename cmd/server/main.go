// Package main implements the entry point for the task management API
// server. It loads configuration, connects to PostgreSQL, applies the
// embedded migrations and serves the HTTP API until interrupted.
package main

import (
	"fmt"
	"os"
)

// version is reported by the root and health endpoints. Overridden at build
// time with -ldflags "-X main.version=...".
var version = "1.0.0"

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "tasks-api: %v\n", err)
		os.Exit(1)
	}
}
