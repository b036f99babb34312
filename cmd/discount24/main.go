package main

import (
	"os"

	"discount24/cmd/discount24/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
