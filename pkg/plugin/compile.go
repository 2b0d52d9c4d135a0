package plugin

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/Daniel-Anker-Hermansen/cpfuzz/pkg/build"
)

// compile concatenates the harness preamble with the user's generator
// source and compiles the result into a shared object, returning its path.
// The caller owns the artifact and must delete it when done.
func compile(srcPath string) (string, error) {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return "", fmt.Errorf("failed to read generator source: %w", err)
	}

	object, err := os.CreateTemp("", "cpfuzz_gen_*.so")
	if err != nil {
		return "", fmt.Errorf("failed to create shared object file: %w", err)
	}
	object.Close()

	cmd := exec.Command("g++", "-x", "c", "-shared", "-fPIC", "-o", object.Name(), "-")
	cmd.Stdin = strings.NewReader(preamble + string(src))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		os.Remove(object.Name())
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &build.ToolchainError{ExitCode: exitErr.ExitCode()}
		}
		return "", fmt.Errorf("failed to run compiler: %w", err)
	}
	return object.Name(), nil
}
