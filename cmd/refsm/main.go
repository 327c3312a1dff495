package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "refsm",
	Short: "Minimal regular-expression engine for whole-string matching",
	Long: `refsm compiles a minimal regex grammar (literals, '.', '*', '+') into a
nondeterministic finite automaton and matches input strings against it.
Matching is whole-string: the entire input must satisfy the pattern.

It can also generate a specialized Go match function for a pattern ahead of
time, for use as a build-time dependency.`,
}

func init() {
	rootCmd.AddCommand(matchCmd())
	rootCmd.AddCommand(genCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
