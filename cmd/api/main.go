package main

import (
	"os"

	"beastypage/cmd/api/commands"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start HTTP server or run schema migrations.
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
