package main

import (
	"os"

	"CryptoPulse/cmd/cryptopulse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
