package cmd

import (
	"github.com/Daniel-Anker-Hermansen/cpfuzz/pkg/runner"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare LANG PROBLEM SECONDARY SPEC",
	Short: "Fuzz two programs differentially against each other",
	Long: `Compare mode runs PROBLEM and SECONDARY on identical input and compares
their outputs token by token, so whitespace and formatting differences do
not count. Typically SECONDARY is a slow brute-force solution known to be
correct.

Example:
  cpfuzz compare rust fast brute input.spec`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(args[0], []string{args[1], args[2]}, args[3], func(bins []string) runner.Runner {
			return runner.Compare{Primary: bins[0], Secondary: bins[1]}
		})
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
