package cmd

import (
	"github.com/Daniel-Anker-Hermansen/cpfuzz/pkg/runner"
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive LANG PROBLEM INTERACTOR SPEC",
	Short: "Fuzz an interactive problem against a live interactor",
	Long: `Interactive mode spawns PROBLEM and INTERACTOR together and connects
them into a conversation: the interactor receives the generated input
first, then each program's output is streamed into the other's input.
The iteration fails unless both exit successfully.

Example:
  cpfuzz interactive cpp sol judge input.spec`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(args[0], []string{args[1], args[2]}, args[3], func(bins []string) runner.Runner {
			return runner.Interactive{Problem: bins[0], Interactor: bins[1]}
		})
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
