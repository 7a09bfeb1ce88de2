package main

import (
	"os"

	"github.com/curanostics/curanostics/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
