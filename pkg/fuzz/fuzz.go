// Package fuzz drives the fuzzing loop: generate one input, run it through
// the configured oracle protocol, repeat until something fails.
package fuzz

import (
	"fmt"
	"os"

	"github.com/Daniel-Anker-Hermansen/cpfuzz/pkg/runner"
)

// Generator produces one randomized input buffer per call. Both the
// interpreted and the native backend satisfy it.
type Generator interface {
	Generate() ([]byte, error)
	Close() error
}

// Failure describes the iteration that stopped the loop. The triggering
// input has already been persisted when a Failure is returned.
type Failure struct {
	Status    runner.Status
	Input     []byte
	Iteration uint64
}

// Loop is one configured fuzzing session. It is synchronous: each
// iteration finishes completely before the next starts.
type Loop struct {
	Generator Generator
	Runner    runner.Runner

	// ArtifactPath receives the failing input, overwriting any earlier one.
	ArtifactPath string

	// Progress, if set, is called after every passing iteration.
	Progress func(iteration uint64)
}

// Run fuzzes until an iteration fails. A generation error or an
// infrastructure error aborts the session with an error; an oracle
// failure is the expected discovery outcome and is returned as a Failure
// after the input is written to the artifact path.
func (l *Loop) Run() (*Failure, error) {
	for iteration := uint64(1); ; iteration++ {
		input, err := l.Generator.Generate()
		if err != nil {
			return nil, err
		}
		status, err := l.Runner.Run(input)
		if err != nil {
			return nil, err
		}
		if status != runner.StatusOk {
			if err := os.WriteFile(l.ArtifactPath, input, 0644); err != nil {
				return nil, fmt.Errorf("failed to persist failing input: %w", err)
			}
			return &Failure{Status: status, Input: input, Iteration: iteration}, nil
		}
		if l.Progress != nil {
			l.Progress(iteration)
		}
	}
}
