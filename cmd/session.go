package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/Daniel-Anker-Hermansen/cpfuzz/pkg/build"
	"github.com/Daniel-Anker-Hermansen/cpfuzz/pkg/fuzz"
	"github.com/Daniel-Anker-Hermansen/cpfuzz/pkg/gen"
	"github.com/Daniel-Anker-Hermansen/cpfuzz/pkg/plugin"
	"github.com/Daniel-Anker-Hermansen/cpfuzz/pkg/runner"
	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	failStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	artifactStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// runSession is the shared body of all four protocol subcommands: build
// the named targets, set up the generator, fuzz until failure and report.
func runSession(langName string, targets []string, specPath string, makeRunner func(bins []string) runner.Runner) error {
	language, err := build.ParseLanguage(langName)
	if err != nil {
		return err
	}

	// 1. Build every target with the selected toolchain
	bins := make([]string, len(targets))
	for i, target := range targets {
		if err := language.Target(target); err != nil {
			return err
		}
		bins[i] = language.Binary(target)
	}

	// 2. Set up the generator backend
	rng := newRand()
	generator, err := newGenerator(specPath, rng)
	if err != nil {
		return err
	}
	defer generator.Close()

	// 3. Fuzz until the first failing iteration
	loop := &fuzz.Loop{
		Generator:    generator,
		Runner:       makeRunner(bins),
		ArtifactPath: artifactPath,
	}

	var failure *fuzz.Failure
	if watchMode {
		failure, err = runWatched(loop)
	} else {
		loop.Progress = func(uint64) { fmt.Fprint(os.Stderr, ".") }
		failure, err = loop.Run()
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}

	// 4. Report. Finding a failing input is the point of the exercise,
	// so the process still exits zero.
	reportFailure(failure)
	return nil
}

func newRand() *rand.Rand {
	s := seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(s))
}

// newGenerator picks the backend: interpreted declaration text by default,
// a compiled C plugin with --native.
func newGenerator(specPath string, rng *rand.Rand) (fuzz.Generator, error) {
	if nativeSpec {
		return plugin.Load(specPath, rng)
	}
	src, err := os.ReadFile(specPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read specification: %w", err)
	}
	spec, err := gen.Parse(string(src), rng)
	if err != nil {
		return nil, err
	}
	return spec, nil
}

func reportFailure(failure *fuzz.Failure) {
	fmt.Fprintln(os.Stderr, failStyle.Render(capitalize(failure.Status.String())))
	fmt.Fprintf(os.Stderr, "Failing input (iteration %d):\n", failure.Iteration)
	os.Stderr.Write(failure.Input)
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, artifactStyle.Render("Saved to "+artifactPath))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
