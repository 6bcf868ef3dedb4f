package main

import (
	"os"

	"github.com/rustyeddy/fillpnl/cmd/fillpnl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
