package main

import (
	"os"

	"github.com/investa/finserve/cmd/investa/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
