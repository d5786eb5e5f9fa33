package main

import (
	"os"

	"github.com/halvora/aa-wallet-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
