package main

import (
	"os"

	// Import the rule packages so their init() registration runs.
	_ "github.com/arthur-debert/tablecheck/pkg/rules"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
