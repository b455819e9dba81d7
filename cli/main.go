// ABOUTME: Entry point for avi-sizer CLI
// ABOUTME: Command-line tool for Avi service unit sizing and CI/CD budget checks

package main

import (
	"fmt"
	"os"

	"github.com/markalston/avi-sizing-calculator/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
