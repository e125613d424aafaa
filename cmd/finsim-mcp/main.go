package main

import (
	"fmt"
	"os"

	"finsim-mcp/cmd/finsim-mcp/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
