// Package build invokes the language toolchain for the target programs
// under test. It is a thin collaborator: cpfuzz only cares whether the
// build succeeded and where the resulting binary lives.
package build

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Language selects the toolchain used to build and locate targets.
type Language string

const (
	Rust      Language = "rust"
	RustDebug Language = "rust-debug"
	Cpp       Language = "cpp"
)

// ParseLanguage validates a language name from the command line.
func ParseLanguage(name string) (Language, error) {
	switch Language(name) {
	case Rust, RustDebug, Cpp:
		return Language(name), nil
	default:
		return "", fmt.Errorf("unknown language %q (expected rust, rust-debug or cpp)", name)
	}
}

// ToolchainError reports a failed toolchain invocation. The harness exits
// with the toolchain's own exit code so build diagnostics stay meaningful.
type ToolchainError struct {
	ExitCode int
}

func (e *ToolchainError) Error() string {
	return fmt.Sprintf("toolchain exited with code %d", e.ExitCode)
}

// Target builds the named program with the language's toolchain. The
// toolchain inherits the console so its own diagnostics reach the user.
func (l Language) Target(name string) error {
	var cmd *exec.Cmd
	switch l {
	case Rust, RustDebug:
		cmd = exec.Command("cargo", "build", "--bin", name, "--release")
	case Cpp:
		cmd = exec.Command("g++", "-O2", name+".cpp", "-o", name)
	default:
		return fmt.Errorf("unknown language %q", string(l))
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ToolchainError{ExitCode: exitErr.ExitCode()}
		}
		return fmt.Errorf("failed to run toolchain for %s: %w", name, err)
	}
	return nil
}

// Binary returns the path of the built executable for name.
func (l Language) Binary(name string) string {
	switch l {
	case Rust, RustDebug:
		return "target/release/" + name
	default:
		return "./" + name
	}
}
