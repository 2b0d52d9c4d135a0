// Package runner executes generated input against one or more target
// programs and judges the result. Four protocols are supported: a single
// run checked by exit status, a differential comparison of two solvers,
// a live interactive session, and a post-hoc verification of the output.
package runner

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"
)

// Runner executes one oracle protocol for a single generated input.
// A returned error is an infrastructure failure (spawn error, stream
// error); oracle verdicts are carried by the Status instead.
type Runner interface {
	Run(input []byte) (Status, error)
}

// execute runs one target binary with input on stdin, captures its whole
// stdout and reports whether it exited successfully. Target stderr is
// discarded; targets communicate by streams and exit status only.
func execute(bin string, input []byte) (ok bool, output []byte, err error) {
	cmd := exec.Command(bin)
	cmd.Stdin = bytes.NewReader(input)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// A non-zero exit is an oracle verdict, not an error.
			return false, out.Bytes(), nil
		}
		return false, nil, fmt.Errorf("failed to run %s: %w", bin, err)
	}
	return true, out.Bytes(), nil
}

// Single runs the problem once and checks its exit status.
type Single struct {
	Problem string
}

func (r Single) Run(input []byte) (Status, error) {
	ok, _, err := execute(r.Problem, input)
	if err != nil {
		return StatusFailed, err
	}
	if !ok {
		return StatusFailed, nil
	}
	return StatusOk, nil
}

// Compare runs two solvers on the same input and compares their outputs
// token by token, so formatting and whitespace differences are ignored.
type Compare struct {
	Primary   string
	Secondary string
}

func (r Compare) Run(input []byte) (Status, error) {
	primaryOk, primaryOut, err := execute(r.Primary, input)
	if err != nil {
		return StatusFailed, err
	}
	secondaryOk, secondaryOut, err := execute(r.Secondary, input)
	if err != nil {
		return StatusFailed, err
	}
	// A crashed solver is reported before any output mismatch, primary first.
	if !primaryOk {
		return StatusPrimaryFailed, nil
	}
	if !secondaryOk {
		return StatusSecondaryFailed, nil
	}
	if !sameTokens(primaryOut, secondaryOut) {
		return StatusDifferentOutputs, nil
	}
	return StatusOk, nil
}

func sameTokens(a, b []byte) bool {
	return slices.Equal(strings.Fields(string(a)), strings.Fields(string(b)))
}

// Verify runs the problem, then feeds the original input followed by a
// newline and the problem's raw output to a verifier program. The verifier
// accepts or rejects via its exit status, which suits problems with more
// than one correct answer.
type Verify struct {
	Problem  string
	Verifier string
}

func (r Verify) Run(input []byte) (Status, error) {
	ok, output, err := execute(r.Problem, input)
	if err != nil {
		return StatusFailed, err
	}
	if !ok {
		return StatusFailed, nil
	}
	verdict := make([]byte, 0, len(input)+1+len(output))
	verdict = append(verdict, input...)
	verdict = append(verdict, '\n')
	verdict = append(verdict, output...)
	ok, _, err = execute(r.Verifier, verdict)
	if err != nil {
		return StatusVerifierFailed, err
	}
	if !ok {
		return StatusVerifierFailed, nil
	}
	return StatusOk, nil
}
