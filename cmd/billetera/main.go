package main

import (
	"os"

	"billetera/cmd/billetera/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
