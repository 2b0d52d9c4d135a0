package cmd

import (
	"errors"
	"os"

	"github.com/Daniel-Anker-Hermansen/cpfuzz/pkg/build"
	"github.com/spf13/cobra"
)

var (
	nativeSpec   bool
	seed         int64
	artifactPath string
	watchMode    bool
)

var rootCmd = &cobra.Command{
	Use:   "cpfuzz",
	Short: "Fuzz competitive-programming solutions with generated test input",
	Long: `cpfuzz repeatedly generates randomized test input from a specification,
feeds it to your solution and stops at the first failing case, which is
saved for reproduction.

The specification is either a small declaration language (int/arr/perm,
one record per line) or, with --native, a C source file compiled and
loaded as a generator plugin.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// A failed toolchain run keeps its own exit code so build
		// diagnostics stay actionable.
		var toolchainErr *build.ToolchainError
		if errors.As(err, &toolchainErr) {
			os.Exit(toolchainErr.ExitCode)
		}
		os.Exit(1)
	}
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&nativeSpec, "native", "g", false, "Treat SPEC as C generator source instead of declaration text")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Random seed (0 seeds from the current time)")
	rootCmd.PersistentFlags().StringVarP(&artifactPath, "artifact", "o", "fuzz.in", "File receiving the failing input")
	rootCmd.PersistentFlags().BoolVarP(&watchMode, "watch", "w", false, "Show a live progress UI instead of the dot stream")
}
