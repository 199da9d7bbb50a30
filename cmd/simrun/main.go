package main

import (
	"os"

	"github.com/rustyeddy/marketsim/cmd/simrun/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
