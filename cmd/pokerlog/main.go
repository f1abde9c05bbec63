package main

import (
	"os"

	"github.com/rustyeddy/pokerlog/cmd/pokerlog/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
