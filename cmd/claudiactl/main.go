package main

import (
	"os"

	"claudiactl/cmd/claudiactl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
