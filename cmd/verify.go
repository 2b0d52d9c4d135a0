package cmd

import (
	"github.com/Daniel-Anker-Hermansen/cpfuzz/pkg/runner"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify LANG PROBLEM VERIFIER SPEC",
	Short: "Fuzz a program whose output is judged by a verifier",
	Long: `Verify mode runs PROBLEM, then hands VERIFIER the generated input, a
newline and the program's raw output on stdin. The verifier accepts or
rejects via its exit status, which suits problems with more than one
correct answer.

Example:
  cpfuzz verify cpp sol checker input.spec`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(args[0], []string{args[1], args[2]}, args[3], func(bins []string) runner.Runner {
			return runner.Verify{Problem: bins[0], Verifier: bins[1]}
		})
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
