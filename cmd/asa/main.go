package main

import (
	"os"

	"github.com/agenthands/asa/cmd/asa/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
