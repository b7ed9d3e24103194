// Command acdat builds, scans with, and inspects double-array-trie
// pattern automatons.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "acdat",
	Short: "build and scan with double-array-trie multi-pattern matchers",
}

func main() {
	rootCmd.AddCommand(buildCmd, scanCmd, dumpCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
