package main

import (
	"os"

	"github.com/dmitrymomot/rulekit/cmd/catalogcheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
