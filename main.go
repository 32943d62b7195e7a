// main is the entry point for the githooks CLI.
package main

import (
	"fmt"
	"os"

	"github.com/boudekerk/githooks/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
