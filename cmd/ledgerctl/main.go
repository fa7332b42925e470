package main

import (
	"os"

	"github.com/mmynk/splitledger/cmd/ledgerctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
