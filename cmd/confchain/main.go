// FILE: lixenwraith/confchain/cmd/confchain/main.go

// Confchain resolves configuration values from fallback chains of sources.
//
// It evaluates chain expressions such as "env:DB_PASSWORD | file:/run/secrets/db
// | value:changeme", explains which source answers, converts configuration
// documents between JSON, YAML and TOML, and manages preferences files.
//
// Usage:
//
//	confchain [command] [flags]
//
// See 'confchain --help' for available commands.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
