package cmd

import (
	"github.com/Daniel-Anker-Hermansen/cpfuzz/pkg/runner"
	"github.com/spf13/cobra"
)

var singleCmd = &cobra.Command{
	Use:   "single LANG PROBLEM SPEC",
	Short: "Fuzz a single program, failing on a non-zero exit",
	Long: `Single mode runs PROBLEM on each generated input and checks only its
exit status. Useful for solutions that assert their own invariants or
crash on bad input.

Example:
  cpfuzz single cpp sol input.spec`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(args[0], []string{args[1]}, args[2], func(bins []string) runner.Runner {
			return runner.Single{Problem: bins[0]}
		})
	},
}

func init() {
	rootCmd.AddCommand(singleCmd)
}
