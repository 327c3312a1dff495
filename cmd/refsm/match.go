package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refsm/refsm/pkg/refsm"
)

func matchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <pattern> [input...]",
		Short: "Match inputs against a pattern (whole-string)",
		Long: `Compiles the pattern once and prints one "input<TAB>result" line per
input. With no input arguments, lines are read from stdin.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			re, err := refsm.Compile(args[0])
			if err != nil {
				return err
			}

			inputs := args[1:]
			if len(inputs) == 0 {
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					inputs = append(inputs, scanner.Text())
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			for _, in := range inputs {
				fmt.Fprintf(out, "%s\t%v\n", in, re.MatchString(in))
			}
			return nil
		},
	}
}
